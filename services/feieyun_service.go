package services

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/yeremiapane/catprinter/models"
	"github.com/yeremiapane/catprinter/utils"
	"gorm.io/gorm"
)

// DefaultFeieyunURL is the European Feieyun open-API endpoint.
const DefaultFeieyunURL = "http://api.de.feieyun.com/Api/Open/"

// FeieyunConfig holds the cloud gateway credentials for one dispatch. It is
// resolved fresh per call so credential changes apply without a restart.
type FeieyunConfig struct {
	URL  string
	User string
	UKey string
	SN   string
}

// IsConfigured reports whether every field needed to sign a request is set.
func (c FeieyunConfig) IsConfigured() bool {
	return c.User != "" && c.UKey != "" && c.SN != ""
}

// WithSN returns a copy of the config bound to one printer's serial number.
func (c FeieyunConfig) WithSN(sn string) FeieyunConfig {
	c.SN = sn
	return c
}

// ResolveFeieyunConfig loads credentials with the environment taking
// precedence over the settings table. Missing values stay empty; the caller
// decides whether that is fatal.
func ResolveFeieyunConfig(db *gorm.DB) FeieyunConfig {
	cfg := FeieyunConfig{
		URL:  os.Getenv("FEIEYUN_URL"),
		User: os.Getenv("FEIEYUN_USER"),
		UKey: os.Getenv("FEIEYUN_UKEY"),
	}

	if db != nil && (cfg.User == "" || cfg.UKey == "" || cfg.URL == "") {
		var settings []models.Setting
		keys := []string{models.SettingFeieyunUser, models.SettingFeieyunUkey, models.SettingFeieyunURL}
		if err := db.Where("`key` IN ?", keys).Find(&settings).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to load feieyun settings: %v", err)
		}
		for _, s := range settings {
			value := strings.TrimSpace(s.Value)
			if value == "" {
				continue
			}
			switch s.Key {
			case models.SettingFeieyunUser:
				if cfg.User == "" {
					cfg.User = value
				}
			case models.SettingFeieyunUkey:
				if cfg.UKey == "" {
					cfg.UKey = value
				}
			case models.SettingFeieyunURL:
				if cfg.URL == "" {
					cfg.URL = value
				}
			}
		}
	}

	if cfg.URL == "" {
		cfg.URL = DefaultFeieyunURL
	}
	return cfg
}

// FeieyunResponse is the gateway's JSON envelope. Ret zero means success.
type FeieyunResponse struct {
	Msg                string          `json:"msg"`
	Ret                int             `json:"ret"`
	Data               json.RawMessage `json:"data"`
	ServerExecutedTime int             `json:"serverExecutedTime"`
}

// FeieyunService signs and sends requests to the Feieyun open API.
type FeieyunService struct {
	config     FeieyunConfig
	httpClient *http.Client
}

func NewFeieyunService(config FeieyunConfig) *FeieyunService {
	return &FeieyunService{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// generateSign builds the request signature: sha1 hex over the concatenation
// of user, ukey and the unix timestamp.
func (fs *FeieyunService) generateSign(stime int64) string {
	payload := fmt.Sprintf("%s%s%d", fs.config.User, fs.config.UKey, stime)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// CallAPI posts a signed form request for one API name and decodes the
// response envelope.
func (fs *FeieyunService) CallAPI(apiName string, params map[string]string) (*FeieyunResponse, error) {
	if fs.config.User == "" || fs.config.UKey == "" {
		return nil, ErrConfigIncomplete
	}

	stime := time.Now().Unix()
	form := url.Values{}
	form.Set("user", fs.config.User)
	form.Set("stime", fmt.Sprintf("%d", stime))
	form.Set("sig", fs.generateSign(stime))
	form.Set("apiname", apiName)
	for key, value := range params {
		form.Set(key, value)
	}

	resp, err := fs.httpClient.PostForm(fs.config.URL, form)
	if err != nil {
		return nil, fmt.Errorf("feieyun request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feieyun returned status %d", resp.StatusCode)
	}

	var result FeieyunResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode feieyun response: %w", err)
	}
	return &result, nil
}

// PrintMsg submits ticket content to the printer bound in the config.
func (fs *FeieyunService) PrintMsg(content string) (*FeieyunResponse, error) {
	if !fs.config.IsConfigured() {
		return nil, ErrConfigIncomplete
	}
	return fs.CallAPI("Open_printMsg", map[string]string{
		"sn":      fs.config.SN,
		"content": content,
		"times":   "1",
	})
}

// QueryPrinterStatus asks the gateway whether the printer is online.
func (fs *FeieyunService) QueryPrinterStatus() (*FeieyunResponse, error) {
	if !fs.config.IsConfigured() {
		return nil, ErrConfigIncomplete
	}
	return fs.CallAPI("Open_queryPrinterStatus", map[string]string{
		"sn": fs.config.SN,
	})
}

// QueryOrderInfoByDate fetches the gateway-side print counts for one day.
// Date format is yyyy-MM-dd.
func (fs *FeieyunService) QueryOrderInfoByDate(date string) (*FeieyunResponse, error) {
	if !fs.config.IsConfigured() {
		return nil, ErrConfigIncomplete
	}
	return fs.CallAPI("Open_queryOrderInfoByDate", map[string]string{
		"sn":   fs.config.SN,
		"date": date,
	})
}
