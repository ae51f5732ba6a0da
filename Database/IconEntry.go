package Database

// IconEntry describes one PNG written to disk.
type IconEntry struct {
	ID     string `json:"ID"`
	Theme  string `json:"Theme"`
	Prefix string `json:"Prefix"`
	Index  int    `json:"Index"`
	Path   string `json:"Path"`
	Width  int    `json:"Width"`
	Height int    `json:"Height"`
	PHash  uint64 `json:"PHash"`
	Added  string `json:"Added"`
	RunID  string `json:"RunID"`
}
