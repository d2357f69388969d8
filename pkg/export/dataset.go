package export

// Section holds the rows belonging to one operating unit.
type Section struct {
	Name string
	Rows []map[string]string
}

// Dataset defines tabular export content grouped into sections.
type Dataset struct {
	Title    string
	Headers  []string
	Sections []Section
}
