package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// CellClass represents the highlight class of a single table cell.
	CellClass string

	// TrendDirection represents the direction of a leader's score trend.
	TrendDirection string

	// MetricKind represents the variant held by a MetricValue.
	MetricKind string

	// DatabaseBackend represents the database backend for the run log.
	DatabaseBackend string

	// RunSource represents the surface that triggered a comparison run.
	RunSource string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	SVGOut     OutputMode = "svg"
	PNGOut     OutputMode = "png"
)

// All cell classes. MaxCell and MinCell are only used when a row has distinct values.
const (
	MaxCell     CellClass = "max"
	MinCell     CellClass = "min"
	NeutralCell CellClass = "neutral"
	MissingCell CellClass = "missing"
)

// All trend directions.
const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// All metric value kinds.
const (
	MetricMissing MetricKind = "missing"
	MetricNumber  MetricKind = "number"
	MetricText    MetricKind = "text"
)

// All run log backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All run sources.
const (
	CLISource  RunSource = "cli"
	HTTPSource RunSource = "http"
	MCPSource  RunSource = "mcp"
)

// MinComparableReports is the smallest report count that produces a comparison.
const MinComparableReports = 2

// ValidOutputModes lists all valid output modes for the compare command.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidChartModes lists all valid output modes for the chart command.
var ValidChartModes = map[OutputMode]struct{}{
	SVGOut:  {},
	PNGOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid run log backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ChartPalette is the fixed, ordered list of series colors. Series reuse it cyclically.
var ChartPalette = []string{
	"rgb(59, 130, 246)",
	"rgb(16, 185, 129)",
	"rgb(249, 115, 22)",
	"rgb(236, 72, 153)",
	"rgb(168, 85, 247)",
	"rgb(251, 191, 36)",
}
