package constants

// Raw reporting queries run through sqlx against the snapshot store.
const (
	GetRecentHistory = `
		SELECT h.id, h.part_id, p.part_number, h.timestamp, h.action,
		       h.from_status, h.to_status, h.technician_id, h.technician_name
		FROM part_history h
		JOIN parts p ON p.id = h.part_id
		ORDER BY h.timestamp DESC
		LIMIT $1;
	`

	GetHistoryForPart = `
		SELECT h.id, h.part_id, p.part_number, h.timestamp, h.action,
		       h.from_status, h.to_status, h.technician_id, h.technician_name
		FROM part_history h
		JOIN parts p ON p.id = h.part_id
		WHERE h.part_id = $1
		ORDER BY h.seq ASC;
	`

	GetTechnicianActivity = `
		SELECT h.id, h.part_id, p.part_number, h.timestamp, h.action,
		       h.from_status, h.to_status, h.technician_id, h.technician_name
		FROM part_history h
		JOIN parts p ON p.id = h.part_id
		WHERE h.technician_id = $1
		ORDER BY h.timestamp DESC
		LIMIT $2;
	`
)
