package repository

import (
	"encoding/json"

	"adas_workorders/internal/domain/entities"
)

var workOrderColumns = []string{"id", "version", "vin", "reference_number", "status", "created_at", "updated_at", "payload"}

// encodePayload renders the whole record as the JSON document stored in the
// payload column. Indexed columns are copies used for lookups only.
func encodePayload(wo entities.WorkOrder) ([]byte, error) {
	return json.Marshal(wo)
}

func decodePayload(version int64, payload []byte) (entities.WorkOrder, error) {
	var wo entities.WorkOrder
	if err := json.Unmarshal(payload, &wo); err != nil {
		return entities.WorkOrder{}, err
	}
	wo.Version = version
	return wo, nil
}
