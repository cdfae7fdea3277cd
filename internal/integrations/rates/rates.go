package rates

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// marketMargin is added on top of the published benchmark to approximate
// the APR retailers actually offer.
var marketMargin = decimal.NewFromInt(5)

// Client fetches the benchmark consumer-credit rate from an XML feed. The
// rate is used as the default APR when a purchase request omits one.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client
func NewClient(url string, log *logrus.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetch retrieves the raw XML feed.
func (c *Client) fetch() ([]byte, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("rates XML response: %s", string(body))

	return body, nil
}

// parseXML extracts the consumer-credit rate from the feed. Expected shape:
//
//	<Rates>
//	  <Rate type="consumer_credit">9.50</Rate>
//	  ...
//	</Rates>
func (c *Client) parseXML(rawBody []byte) (decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse XML: %v", err)
	}

	for _, el := range doc.FindElements("//Rates/Rate") {
		if el.SelectAttrValue("type", "") != "consumer_credit" {
			continue
		}
		rate, err := decimal.NewFromString(el.Text())
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to parse rate %q: %v", el.Text(), err)
		}
		return rate, nil
	}

	return decimal.Zero, fmt.Errorf("no consumer_credit rate found in XML")
}

// ReferenceRate retrieves the benchmark APR and adds the market margin.
func (c *Client) ReferenceRate() (decimal.Decimal, error) {
	body, err := c.fetch()
	if err != nil {
		return decimal.Zero, err
	}

	rate, err := c.parseXML(body)
	if err != nil {
		return decimal.Zero, err
	}

	rate = rate.Add(marketMargin)

	c.log.Infof("Retrieved reference rate: %s%% (including %s%% market margin)", rate, marketMargin)
	return rate, nil
}
