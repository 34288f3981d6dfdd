package heybeauty

// ClothingItem is a catalog entry from the remote try-on service.
type ClothingItem struct {
	ClothID     string `json:"cloth_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ClothImgURL string `json:"cloth_img_url"`
}

// TryOnTask is the client-side projection of a remote try-on job. The remote
// service owns the task lifecycle (pending -> succeeded|failed); this type only
// reflects the most recent remote response.
type TryOnTask struct {
	TaskID      string `json:"task_id"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
	Status      string `json:"status"`
	TryOnImgURL string `json:"tryon_img_url"`
}

// SubmitTaskRequest carries the inputs for creating a try-on task. ClothID and
// ClothDescription are optional and omitted from the outbound request when empty.
type SubmitTaskRequest struct {
	UserImgURL       string
	ClothImgURL      string
	ClothID          string
	ClothDescription string
}

// envelope is the remote API's uniform response wrapper. A non-zero Code means
// the call failed remotely and Message explains why.
type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// listClothesRequest is the fixed-window catalog page request. The remote
// catalog is small enough that page 1 / limit 10 covers it; no paging loop.
type listClothesRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// createTaskRequest is the outbound body for task submission. Category and
// IsSync are fixed by the remote contract; cloth_id and caption appear only
// when supplied.
type createTaskRequest struct {
	UserImgURL  string `json:"user_img_url"`
	ClothImgURL string `json:"cloth_img_url"`
	Category    string `json:"category"`
	IsSync      string `json:"is_sync"`
	ClothID     string `json:"cloth_id,omitempty"`
	Caption     string `json:"caption,omitempty"`
}

// taskInfoRequest addresses an existing task by its remote identifier.
type taskInfoRequest struct {
	TaskUUID string `json:"task_uuid"`
}

// taskRecord is the remote task shape shared by the create-task and task-info
// endpoints. The identifier field is named uuid on the wire.
type taskRecord struct {
	UUID        string `json:"uuid"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
	Status      string `json:"status"`
	TryOnImgURL string `json:"tryon_img_url"`
}
