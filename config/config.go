package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/onsia-realty/auction-crawler/models"
)

type Config struct {
	Source    SourceConfig
	Database  DatabaseConfig
	Scheduler SchedulerConfig
	S3        S3Config
	OpsDBPath string
	FeedPath  string
	LogDir    string
	Courts    map[string]string // court code -> name
	Feed      []models.CaseRef
}

type SourceConfig struct {
	BaseURL   string
	UserAgent string
	TimeoutMS int
	DelayMS   int
}

type DatabaseConfig struct {
	URL string
}

type SchedulerConfig struct {
	Interval time.Duration
	Cron     string
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	KeyPrefix       string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Source: SourceConfig{
			BaseURL:   getEnv("AUCTION_BASE_URL", "https://www.courtauction.go.kr"),
			UserAgent: getEnv("CRAWL_USER_AGENT", ""),
			TimeoutMS: getEnvInt("CRAWL_TIMEOUT_MS", 30000),
			DelayMS:   getEnvInt("CRAWL_DELAY_MS", 500),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Scheduler: SchedulerConfig{
			Cron: os.Getenv("CRAWL_CRON"),
		},
		S3: S3Config{
			Bucket:          os.Getenv("S3_BUCKET"),
			Region:          getEnv("S3_REGION", "ap-northeast-2"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			KeyPrefix:       getEnv("S3_KEY_PREFIX", "auction-photos"),
		},
		OpsDBPath: getEnv("OPS_DB_PATH", "crawler.db"),
		FeedPath:  getEnv("CASE_FEED_PATH", "config/cases.yaml"),
		LogDir:    getEnv("LOG_DIR", "logs"),
		Courts:    defaultCourts(),
	}

	if interval := os.Getenv("CRAWL_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err == nil {
			cfg.Scheduler.Interval = d
		}
	}

	if err := cfg.loadCourtRoster(); err != nil {
		return nil, err
	}
	if err := cfg.loadFeed(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Delay() time.Duration {
	return time.Duration(c.Source.DelayMS) * time.Millisecond
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Source.TimeoutMS) * time.Millisecond
}

// loadCourtRoster merges an optional on-disk court roster over the
// built-in table.
func (c *Config) loadCourtRoster() error {
	path := getEnv("COURT_ROSTER_PATH", "config/courts.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var roster map[string]string
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return fmt.Errorf("parse court roster %s: %w", path, err)
	}
	for code, name := range roster {
		c.Courts[code] = name
	}
	return nil
}

type feedEntry struct {
	CourtCode string `yaml:"court_code"`
	CaseNo    string `yaml:"case_no"`
}

// loadFeed reads the configured case feed. A missing feed file leaves
// the feed empty; single-case CLI runs do not need one.
func (c *Config) loadFeed() error {
	data, err := os.ReadFile(c.FeedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var entries []feedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse case feed %s: %w", c.FeedPath, err)
	}
	for _, e := range entries {
		if e.CourtCode == "" || e.CaseNo == "" {
			continue
		}
		c.Feed = append(c.Feed, models.CaseRef{CourtCode: e.CourtCode, CaseNo: e.CaseNo})
	}
	return nil
}

// defaultCourts is the built-in court roster. The on-disk roster can
// extend or override it.
func defaultCourts() map[string]string {
	return map[string]string{
		"B000210": "서울중앙지방법원",
		"B000211": "서울동부지방법원",
		"B000212": "서울남부지방법원",
		"B000213": "서울북부지방법원",
		"B000214": "서울서부지방법원",
		"B000215": "의정부지방법원",
		"B000240": "인천지방법원",
		"B000250": "수원지방법원",
		"B000310": "춘천지방법원",
		"B000320": "대전지방법원",
		"B000330": "청주지방법원",
		"B000410": "대구지방법원",
		"B000510": "부산지방법원",
		"B000511": "부산동부지원",
		"B000520": "울산지방법원",
		"B000530": "창원지방법원",
		"B000610": "광주지방법원",
		"B000620": "전주지방법원",
		"B000630": "제주지방법원",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
