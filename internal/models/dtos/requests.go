package dtos

// LoginRequest exchanges a seeded user id for a session token.
type LoginRequest struct {
	UserID string `json:"user_id"`
}

// IntakeRequest is the incoming-part registration form payload.
type IntakeRequest struct {
	PartNumber     string  `json:"part_number"`
	WorkOrder      string  `json:"work_order"`
	Aircraft       string  `json:"aircraft"`
	Customer       string  `json:"customer"`
	Location       string  `json:"location"`
	Description    string  `json:"description,omitempty"`
	SerialNumber   string  `json:"serial_number,omitempty"`
	Manufacturer   string  `json:"manufacturer,omitempty"`
	PartType       string  `json:"part_type,omitempty"`
	RFIDUid        string  `json:"rfid_uid,omitempty"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// UpdatePartRequest patches descriptive fields; nil fields are left alone.
type UpdatePartRequest struct {
	Aircraft       *string  `json:"aircraft,omitempty"`
	Customer       *string  `json:"customer,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Description    *string  `json:"description,omitempty"`
	SerialNumber   *string  `json:"serial_number,omitempty"`
	Manufacturer   *string  `json:"manufacturer,omitempty"`
	PartType       *string  `json:"part_type,omitempty"`
	RFIDUid        *string  `json:"rfid_uid,omitempty"`
	Priority       *string  `json:"priority,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
}

// NoteRequest appends a technician note to a part.
type NoteRequest struct {
	Text string `json:"text"`
}

// CompleteRepairRequest closes out a repair with the hours actually spent.
type CompleteRepairRequest struct {
	ActualHours float64 `json:"actual_hours"`
}

// StartRepairRequest assigns a technician and starts the repair clock.
type StartRepairRequest struct {
	TechnicianID string `json:"technician_id"`
}

// BulkAssignRequest assigns many parts to one technician.
type BulkAssignRequest struct {
	PartIDs      []string `json:"part_ids"`
	TechnicianID string   `json:"technician_id"`
}

// BulkStatusRequest transitions many parts to one target status.
type BulkStatusRequest struct {
	PartIDs []string `json:"part_ids"`
	Status  string   `json:"status"`
}

// BadgeRequest awards a named badge to a technician.
type BadgeRequest struct {
	Badge string `json:"badge"`
}
