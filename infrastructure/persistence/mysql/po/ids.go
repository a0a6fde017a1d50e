package po

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// idsToJSON encodes an id set as a JSON array column. nil becomes [].
func idsToJSON(ids []int64) datatypes.JSON {
	if ids == nil {
		ids = []int64{}
	}
	b, _ := json.Marshal(ids)
	return datatypes.JSON(b)
}

func idsFromJSON(raw datatypes.JSON) []int64 {
	var ids []int64
	if len(raw) == 0 {
		return ids
	}
	_ = json.Unmarshal(raw, &ids)
	return ids
}
