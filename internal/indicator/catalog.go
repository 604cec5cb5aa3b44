package indicator

// Kind identifies an indicator in requests and output.
type Kind string

const (
	KindSMA        Kind = "sma"
	KindEMA        Kind = "ema"
	KindRSI        Kind = "rsi"
	KindMACD       Kind = "macd"
	KindBollinger  Kind = "bollinger"
	KindStochastic Kind = "stochastic"
	KindWilliamsR  Kind = "williams_r"
)

// Category groups indicators the way the chart's indicator panel does.
type Category string

const (
	CategoryTrend      Category = "trend"
	CategoryMomentum   Category = "momentum"
	CategoryVolatility Category = "volatility"
)

// Line names used in Result.Lines.
const (
	LineValue     = "value"
	LineMACD      = "macd"
	LineSignal    = "signal"
	LineHistogram = "histogram"
	LineUpper     = "upper"
	LineMiddle    = "middle"
	LineLower     = "lower"
	LineK         = "k"
	LineD         = "d"
)

// Info describes one indicator kind.
type Info struct {
	Kind        Kind
	Name        string
	Category    Category
	Description string
	Lines       []string
	Defaults    Params
}

var catalog = []Info{
	{
		Kind:        KindSMA,
		Name:        "Simple Moving Average",
		Category:    CategoryTrend,
		Description: "Average price over a given period, helps identify trends and support/resistance levels.",
		Lines:       []string{LineValue},
		Defaults:    Params{Period: 20},
	},
	{
		Kind:        KindEMA,
		Name:        "Exponential Moving Average",
		Category:    CategoryTrend,
		Description: "Weighted average that gives more importance to recent prices, more responsive than SMA.",
		Lines:       []string{LineValue},
		Defaults:    Params{Period: 20},
	},
	{
		Kind:        KindRSI,
		Name:        "Relative Strength Index",
		Category:    CategoryMomentum,
		Description: "Momentum oscillator measuring speed and change of price movements on a scale of 0-100.",
		Lines:       []string{LineValue},
		Defaults:    Params{Period: 14},
	},
	{
		Kind:        KindMACD,
		Name:        "Moving Average Convergence Divergence",
		Category:    CategoryMomentum,
		Description: "Trend-following momentum indicator showing relationship between two moving averages.",
		Lines:       []string{LineMACD, LineSignal, LineHistogram},
		Defaults:    Params{Fast: 12, Slow: 26, Signal: 9},
	},
	{
		Kind:        KindBollinger,
		Name:        "Bollinger Bands",
		Category:    CategoryVolatility,
		Description: "Volatility indicator with upper and lower bands around a moving average.",
		Lines:       []string{LineUpper, LineMiddle, LineLower},
		Defaults:    Params{Period: 20, StdDev: DefaultStdDevMultiplier},
	},
	{
		Kind:        KindStochastic,
		Name:        "Stochastic Oscillator",
		Category:    CategoryMomentum,
		Description: "Momentum indicator comparing closing price to price range over time.",
		Lines:       []string{LineK, LineD},
		Defaults:    Params{KPeriod: 14, DPeriod: 3},
	},
	{
		Kind:        KindWilliamsR,
		Name:        "Williams %R",
		Category:    CategoryMomentum,
		Description: "Momentum oscillator placing the close within the recent high-low range on a scale of -100 to 0.",
		Lines:       []string{LineValue},
		Defaults:    Params{Period: 14},
	},
}

// Lookup returns the catalog entry for kind. The returned Info is a copy.
func Lookup(kind Kind) (Info, bool) {
	for _, info := range catalog {
		if info.Kind == kind {
			info.Lines = append([]string(nil), info.Lines...)
			return info, true
		}
	}
	return Info{}, false
}

// Kinds lists every supported kind in catalog order.
func Kinds() []Kind {
	kinds := make([]Kind, len(catalog))
	for i, info := range catalog {
		kinds[i] = info.Kind
	}
	return kinds
}
