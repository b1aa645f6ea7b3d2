package catalog

// Line holds display metadata for one metro line.
type Line struct {
	ID     string `json:"line_id"`
	NameEN string `json:"name_en"`
	NameAR string `json:"name_ar"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

// The Riyadh Metro network has a fixed set of six lines. Display metadata
// is compiled in rather than discovered from data.
var lines = map[string]Line{
	"Line1": {ID: "Line1", NameEN: "Blue line", NameAR: "المسار الأزرق", Color: "#0077C8", Icon: "line_blue"},
	"Line2": {ID: "Line2", NameEN: "Red line", NameAR: "المسار الأحمر", Color: "#E10600", Icon: "line_red"},
	"Line3": {ID: "Line3", NameEN: "Orange line", NameAR: "المسار البرتقالي", Color: "#F57C00", Icon: "line_orange"},
	"Line4": {ID: "Line4", NameEN: "Yellow line", NameAR: "المسار الأصفر", Color: "#FBC02D", Icon: "line_yellow"},
	"Line5": {ID: "Line5", NameEN: "Green line", NameAR: "المسار الأخضر", Color: "#2E7D32", Icon: "line_green"},
	"Line6": {ID: "Line6", NameEN: "Purple line", NameAR: "المسار البنفسجي", Color: "#6A1B9A", Icon: "line_purple"},
}

// LineByID returns display metadata for a line. Unknown ids get a generic
// fallback label instead of failing.
func LineByID(id string) Line {
	if l, ok := lines[id]; ok {
		return l
	}
	return Line{ID: id, NameEN: "Metro line", NameAR: "مسار المترو", Color: "#3B82F6", Icon: "line_generic"}
}
