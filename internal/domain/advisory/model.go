package advisory

// Bucket is the semantic weather category derived from a WMO condition code.
type Bucket string

const (
	BucketClear   Bucket = "clear"
	BucketCloudy  Bucket = "cloudy"
	BucketFog     Bucket = "fog"
	BucketDrizzle Bucket = "drizzle"
	BucketRain    Bucket = "rain"
	BucketSnow    Bucket = "snow"
	BucketStorm   Bucket = "storm"
)

// Buckets lists every bucket in classification order.
var Buckets = []Bucket{
	BucketClear, BucketCloudy, BucketFog, BucketDrizzle, BucketRain, BucketSnow, BucketStorm,
}

// adverse reports whether precipitation or storms should change travel plans.
func (b Bucket) adverse() bool {
	return b == BucketRain || b == BucketSnow || b == BucketStorm
}

// Visual is the display form of a condition code.
type Visual struct {
	Bucket Bucket `json:"bucket"`
	Icon   string `json:"icon"`
	Label  string `json:"label"`
}

// Link is a labeled external URL.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Links groups the static reference links shown next to each advice list.
type Links struct {
	Gear      []Link `json:"gear"`
	Fashion   []Link `json:"fashion"`
	Transport []Link `json:"transport"`
	Health    []Link `json:"health"`
}

// Recommendation is the advisory bundle for one bucket, purpose and temperature.
type Recommendation struct {
	Take      []string `json:"take"`
	Wear      []string `json:"wear"`
	Transport []string `json:"transport"`
	Health    []string `json:"health"`
	Links     Links    `json:"links"`
}

// Advertisement is the single contextual ad attached to a result.
type Advertisement struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	LinkLabel string `json:"linkLabel"`
	LinkURL   string `json:"linkUrl"`
}
