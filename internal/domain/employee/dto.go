package employee

type EmployeeResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Position *string `json:"position,omitempty"`
	FingerID *int    `json:"finger_id,omitempty"`
	Enrolled bool    `json:"enrolled"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		FullName: e.FullName,
		Position: e.Position,
		FingerID: e.FingerID,
		Enrolled: e.FingerID != nil,
	}
}

func NewEmployeeResponses(list []Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		responses = append(responses, NewEmployeeResponse(e))
	}
	return responses
}
