package implementation

import (
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

type groupCountRow struct {
	GroupKey   *string
	GroupCount int64
}

// countGrouped runs SELECT column, COUNT(*) ... GROUP BY column, largest groups first.
func countGrouped(db *gorm.DB, column string, specs ...specification.Specification) ([]entity.GroupCount, error) {
	var rows []groupCountRow
	query := db.Select(column + " AS group_key, COUNT(*) AS group_count").
		Group(column).
		Order("group_count DESC").
		Order("group_key ASC")
	query = applySpecifications(query, specs...)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]entity.GroupCount, 0, len(rows))
	for _, row := range rows {
		key := ""
		if row.GroupKey != nil {
			key = *row.GroupKey
		}
		result = append(result, entity.GroupCount{Key: key, Count: row.GroupCount})
	}
	return result, nil
}
