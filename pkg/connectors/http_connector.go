package connectors

import (
	"encoding/json"
	"net/http"
	"strings"

	"limeal.fr/launchygo-resolver/pkg/utils"
)

const HTTP_SCHEME = "http"
const HTTPS_SCHEME = "https"

const userAgent = "launchygo-resolver"

type HttpConnector struct {
	URL string

	Secured bool // https or http
	Client  *http.Client
}

func (c *HttpConnector) NewFromURI(uri string) Connector {
	return &HttpConnector{
		URL:     uri,
		Secured: strings.HasPrefix(uri, HTTPS_SCHEME+"://"),
	}
}

func (c *HttpConnector) options() *utils.RequestOptions[[]byte] {
	opts := utils.NewRequestOptions[[]byte](nil)
	opts.Client = c.Client
	opts.AddHeader("User-Agent", userAgent)
	return opts
}

func (c *HttpConnector) GetPath() string {
	return c.URL
}

func (c *HttpConnector) GetURI() string {
	return c.URL
}

func (c *HttpConnector) GetScheme() string {
	if c.Secured {
		return HTTPS_SCHEME
	}
	return HTTP_SCHEME
}

func (c *HttpConnector) Connect() error {
	return nil
}

func (c *HttpConnector) IsConnected() bool {
	return true
}

func (c *HttpConnector) Close() error {
	return nil
}

/**
* Read the file from remote url
* e.g. https://meta.fabricmc.net/v2 + /versions/loader
 */
func (c *HttpConnector) ReadFile(remotePath string, dest any) error {
	bytes, err := c.ReadFileBytes(remotePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, dest)
}

func (c *HttpConnector) ReadFileBytes(remotePath string) ([]byte, error) {
	return utils.DoRequest("GET", joinURL(c.URL, remotePath), c.options())
}

func (c *HttpConnector) DownloadFile(remotePath string, localPath string) error {
	bytes, err := c.ReadFileBytes(remotePath)
	if err != nil {
		return err
	}
	return utils.WriteFileBytes(localPath, bytes)
}

func (c *HttpConnector) HasFile(remotePath string) bool {
	_, err := utils.DoRequest("HEAD", joinURL(c.URL, remotePath), c.options())
	return err == nil
}
