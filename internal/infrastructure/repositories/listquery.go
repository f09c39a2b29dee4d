package repositories

import (
	"strings"

	"brickvest.backend/pkg/utils"
	"gorm.io/gorm"
)

// FieldDef describes one exposed list field: the backing column and whether
// values are normalized to upper case before matching (status-like enums).
type FieldDef struct {
	Column string
	Upper  bool
}

// ListSpec declares, per endpoint, which fields may be filtered, selected
// and sorted, and which associations may be populated. Unrecognized fields
// and associations are ignored rather than rejected.
type ListSpec struct {
	Fields      map[string]FieldDef
	Preloads    map[string]string
	DefaultSort string
}

var filterSQLOps = map[utils.FilterOp]string{
	utils.FilterOpEq:  "=",
	utils.FilterOpGt:  ">",
	utils.FilterOpGte: ">=",
	utils.FilterOpLt:  "<",
	utils.FilterOpLte: "<=",
}

// Filtered applies the recognized filters of q to db
func (s ListSpec) Filtered(db *gorm.DB, q utils.ListQuery) *gorm.DB {
	for _, f := range q.Filters {
		def, ok := s.Fields[f.Field]
		if !ok || len(f.Values) == 0 {
			continue
		}

		if f.Op == utils.FilterOpIn {
			values := f.Values
			if def.Upper {
				values = upperAll(values)
			}
			db = db.Where(def.Column+" IN ?", values)
			continue
		}

		op, ok := filterSQLOps[f.Op]
		if !ok {
			continue
		}
		value := f.Values[0]
		if def.Upper {
			value = strings.ToUpper(value)
		}
		db = db.Where(def.Column+" "+op+" ?", value)
	}
	return db
}

// Page applies projection, sort, populate and pagination to db
func (s ListSpec) Page(db *gorm.DB, q utils.ListQuery) *gorm.DB {
	if cols := s.columns(q.Select); len(cols) > 0 {
		db = db.Select(cols)
	}

	ordered := false
	for _, sf := range q.Sort {
		def, ok := s.Fields[sf.Field]
		if !ok {
			continue
		}
		clause := def.Column
		if sf.Desc {
			clause += " DESC"
		}
		db = db.Order(clause)
		ordered = true
	}
	if !ordered {
		sort := s.DefaultSort
		if sort == "" {
			sort = "created_at DESC"
		}
		db = db.Order(sort)
	}

	for _, p := range q.Populate {
		if assoc, ok := s.Preloads[p]; ok {
			db = db.Preload(assoc)
		}
	}

	return db.Limit(q.Limit).Offset(utils.Offset(q.Page, q.Limit))
}

func (s ListSpec) columns(selected []string) []string {
	var cols []string
	for _, f := range selected {
		if def, ok := s.Fields[f]; ok {
			cols = append(cols, def.Column)
		}
	}
	if len(cols) > 0 {
		// Mapping back to entities always needs the primary key.
		cols = append(cols, "id")
	}
	return cols
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.ToUpper(v)
	}
	return out
}
