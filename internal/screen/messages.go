package screen

// User-facing texts. The app ships in Vietnamese only.
const (
	TitleError   = "Lỗi"
	TitleSuccess = "Thành công"

	MsgLoginFailed      = "Đăng nhập thất bại"
	MsgLoginIncomplete  = "Vui lòng nhập email và mật khẩu"
	MsgPasswordMismatch = "Mật khẩu không khớp!"
	MsgRegisterFailed   = "Đăng ký thất bại"
	MsgRegistered       = "Đăng ký thành công"

	MsgLoadFailed    = "Không thể tải dữ liệu sản phẩm. Vui lòng thử lại sau."
	MsgLoading       = "Đang tải dữ liệu..."
	MsgEmptyTitle    = "Chưa có sản phẩm nào"
	MsgEmptyHint     = "Bấm \"Thêm sản phẩm\" để bắt đầu"
	MsgMissingFields = "Vui lòng điền đầy đủ thông tin sản phẩm"
	MsgInvalidPrice  = "Giá sản phẩm không hợp lệ"
	MsgUpdateFailed  = "Không thể cập nhật sản phẩm. Vui lòng thử lại."
	MsgCreateFailed  = "Không thể thêm sản phẩm mới. Vui lòng thử lại."
	MsgDeleteFailed  = "Không thể xóa sản phẩm. Vui lòng thử lại."

	TitleConfirmDelete = "Xác nhận xóa"
	MsgConfirmDelete   = "Bạn có chắc chắn muốn xóa sản phẩm này?"
	LabelCancel        = "Hủy"
	LabelDelete        = "Xóa"

	TitleProducts   = "Quản lý sản phẩm"
	TitleAddForm    = "Thêm sản phẩm mới"
	TitleEditForm   = "Sửa sản phẩm"
	LabelAdd        = "Thêm sản phẩm"
	LabelRetry      = "Thử lại"
	LabelCategory   = "Loại"
	LabelName       = "Tên sản phẩm"
	LabelPrice      = "Giá (VND)"
	LabelImage      = "Hình ảnh"
	LabelToRegister = "Chưa có tài khoản? Đăng ký"
	LabelToLogin    = "Đã có tài khoản? Đăng nhập"
)
