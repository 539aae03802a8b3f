package todo

// Fixed presentation text.
const (
	DeleteConfirmMessage = "Bạn có chắc chắn muốn xóa không?"

	EmptyAllMessage       = "Chưa có công việc nào. Hãy thêm công việc đầu tiên!"
	EmptyActiveMessage    = "Không có công việc nào chưa hoàn thành! 🎉"
	EmptyCompletedMessage = "Chưa có công việc nào được hoàn thành 🙄😏"

	SaveLabel   = "💾 Lưu"
	CancelLabel = "❌ Hủy"
	EditLabel   = "✏️ Sửa"
	DeleteLabel = "🗑️ Xóa"
)
