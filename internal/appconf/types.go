package appconf

import "time"

// KakaoConfig holds the provider endpoints and credentials.
type KakaoConfig struct {
	RestAPIKey   string `yaml:"restApiKey"`
	LocalBaseURL string `yaml:"localBaseURL" validate:"required,url"`
	NaviBaseURL  string `yaml:"naviBaseURL" validate:"required,url"`
	Priority     string `yaml:"priority" validate:"oneof=RECOMMEND TIME DISTANCE"`
	TimeoutMS    int    `yaml:"timeoutMS" validate:"gt=0"`
}

// Timeout returns the per-request provider timeout.
func (k KakaoConfig) Timeout() time.Duration {
	return time.Duration(k.TimeoutMS) * time.Millisecond
}

// RegionConfig scopes geocoding and the initial map view.
type RegionConfig struct {
	Hint      string  `yaml:"hint"`
	CenterLat float64 `yaml:"centerLat" validate:"gte=-90,lte=90"`
	CenterLon float64 `yaml:"centerLon" validate:"gte=-180,lte=180"`
	Level     int     `yaml:"level" validate:"gte=1,lte=14"`
}

// GTFSConfig points at the static feed backing line and stop lookup.
type GTFSConfig struct {
	Source string `yaml:"source"`
}

type CacheConfig struct {
	GeocodeTTL    time.Duration `yaml:"geocodeTTL" validate:"gte=0"`
	StopCacheSize int           `yaml:"stopCacheSize" validate:"gte=0"`
}

// Config is the root configuration structure.
type Config struct {
	Port      int          `yaml:"port" validate:"gt=0,lte=65535"`
	Env       Environment  `yaml:"env"`
	RateLimit int          `yaml:"rateLimit" validate:"gte=0"`
	Kakao     KakaoConfig  `yaml:"kakao"`
	Region    RegionConfig `yaml:"region"`
	GTFS      GTFSConfig   `yaml:"gtfs"`
	Cache     CacheConfig  `yaml:"cache"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Port:      8888,
		Env:       Development,
		RateLimit: 20,
		Kakao: KakaoConfig{
			LocalBaseURL: "https://dapi.kakao.com",
			NaviBaseURL:  "https://apis-navi.kakaomobility.com",
			Priority:     "RECOMMEND",
			TimeoutMS:    10000,
		},
		Region: RegionConfig{
			Hint:      "광주 버스정류장",
			CenterLat: 35.1595,
			CenterLon: 126.8526,
			Level:     8,
		},
		Cache: CacheConfig{
			GeocodeTTL:    30 * time.Minute,
			StopCacheSize: 256,
		},
	}
}
