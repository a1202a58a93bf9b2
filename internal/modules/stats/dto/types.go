package dto

type ReportInput struct {
	Range   string
	Tags    []string
	Heatmap bool
}

type DayOutput struct {
	Day     string
	Seconds int64
}

type CellOutput struct {
	Day     string
	Weekday int
	Seconds int64
	Tier    int
}

type HeatmapOutput struct {
	Weeks [][]CellOutput
	First string
	Last  string
}

// ReportOutput is everything the stats views render for one filter.
type ReportOutput struct {
	Range              string
	RangeLabel         string
	Cutoff             int64
	Tags               []string
	SessionCount       int
	TotalSeconds       int64
	DaysStudied        int
	AveragePerStudyDay int64
	Days               []DayOutput
	Heatmap            *HeatmapOutput
}

type RangeOption struct {
	Name  string
	Label string
}

type FilterInput struct {
	Range string
	Tags  []string
}
