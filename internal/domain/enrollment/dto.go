package enrollment

// StartEnrollResponse reports the fingerprint slot allocated for the
// pending employee. The device programs this ID and answers with an
// enroll_result event.
type StartEnrollResponse struct {
	EmployeeID string `json:"employeeId"`
	FingerID   int    `json:"fingerId"`
}

// EnrollUpdate is the payload of the `enroll_update` event pushed to
// monitor connections when an enrollment resolves.
type EnrollUpdate struct {
	EmployeeID string `json:"employeeId"`
	Success    bool   `json:"success"`
	FingerID   int    `json:"fingerId"`
	Message    string `json:"message,omitempty"`
}
