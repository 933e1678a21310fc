package components

// FormValues pre-fills the QR form. After a submission it echoes what the
// user sent so the form keeps its state.
type FormValues struct {
	URL             string
	Foreground      string
	Background      string
	Version         int
	ErrorCorrection string
	LogoSize        int
	Border          int
	BoxSize         int
	Shape           string
}

// ResultData is what the result panel shows after a successful generation.
type ResultData struct {
	DataURI      string
	DownloadName string
	Version      int
	Side         int
	// Scannable is nil when no read-back check ran.
	Scannable *bool
}

// Form field limits shown to the user.
const (
	MinLogoSize = 30
	MaxLogoSize = 150
	MinBorder   = 1
	MaxBorder   = 10
	MinVersion  = 1
	MaxVersion  = 40
)

const inputClass = "mt-1 block w-full rounded-md border border-gray-300 px-3 py-2 text-sm focus:border-gray-900 focus:outline-none"

type selectOption struct{ Value, Label string }

var ecLevels = []selectOption{
	{"L", "L (7% recovery)"},
	{"M", "M (15% recovery)"},
	{"Q", "Q (25% recovery)"},
	{"H", "H (30% recovery)"},
}

var shapeOptions = []selectOption{
	{"square", "Square"},
	{"circle", "Circle"},
	{"liquid", "Liquid"},
	{"chain", "Chain"},
	{"hstripe", "Horizontal stripes"},
	{"vstripe", "Vertical stripes"},
}

// AlertVariant picks the color scheme of an inline alert.
type AlertVariant string

const (
	AlertWarning AlertVariant = "warning"
	AlertError   AlertVariant = "error"
)

var alertClasses = map[AlertVariant]string{
	AlertWarning: "border-amber-400 bg-amber-50 text-amber-900",
	AlertError:   "border-red-400 bg-red-50 text-red-900",
}
