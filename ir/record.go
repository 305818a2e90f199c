package ir

// Record is one `#<n> -> ...` entry of a records section.
type Record struct {
	Index  int
	Line   int
	Fields *Object
}

func NewRecord(index, line int) *Record {
	return &Record{Index: index, Line: line, Fields: NewObject()}
}

// Data converts the record fields to plain Go data.
func (r *Record) Data() map[string]any {
	return r.Fields.Data()
}
