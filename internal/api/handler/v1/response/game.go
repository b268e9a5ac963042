package response

type LeaveGameResponse struct {
	Success bool `json:"success"`
}
