// Package registrar implements the authoritative domain-availability adapter
// against a Loopia-style XML-RPC registrar API.
package registrar

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kolo/xmlrpc"

	"namecheck/internal/errors"
	"namecheck/ports"
)

// Config holds registrar adapter settings.
type Config struct {
	Endpoint    string
	Username    string
	Password    string
	Timeout     time.Duration
	HourlyLimit int // fail fast beyond this many calls per hour
}

// Client wraps an xmlrpc.Client and automatically inserts username+password
// as the first two parameters of every call, the way the registrar expects.
type Client struct {
	config Config
	rpc    *xmlrpc.Client

	// Hourly call accounting. The adapter fails fast at the limit instead of
	// queueing; a rate-limited call degrades the channel to its fallback.
	callsMutex    sync.Mutex
	callsThisHour int
	hourStartTime time.Time
}

// New creates a registrar client. A client without credentials is still
// returned (Configured() reports false) so the domain resolver can be wired
// unconditionally and degrade at call time.
func New(config Config) (*Client, error) {
	if config.Timeout <= 0 {
		config.Timeout = 8 * time.Second
	}
	if config.HourlyLimit <= 0 {
		config.HourlyLimit = 60
	}

	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: config.Timeout}).DialContext,
		ResponseHeaderTimeout: config.Timeout,
	}
	rpc, err := xmlrpc.NewClient(config.Endpoint, transport)
	if err != nil {
		return nil, fmt.Errorf("create xmlrpc client: %w", err)
	}

	return &Client{
		config:        config,
		rpc:           rpc,
		hourStartTime: time.Now(),
	}, nil
}

// Configured reports whether registrar credentials are present.
func (c *Client) Configured() bool {
	return c.config.Username != "" && c.config.Password != ""
}

// CheckDomain reports the registrar's authoritative availability for domain.
func (c *Client) CheckDomain(ctx context.Context, domain string) (ports.DomainAvailability, error) {
	if !c.Configured() {
		return ports.DomainAvailability{}, errors.NotConfigured("registrar API")
	}
	if err := c.consumeRateSlot(); err != nil {
		return ports.DomainAvailability{}, err
	}

	status, err := c.call(ctx, "domainIsFree", domain)
	if err != nil {
		return ports.DomainAvailability{}, errors.ExternalServiceError("registrar", err)
	}

	avail := ports.DomainAvailability{}
	switch strings.ToUpper(fmt.Sprintf("%v", status)) {
	case "OK", "FREE":
		avail.Free = true
	default:
		avail.Free = false
	}

	// Price lookup is best-effort: a missing price never blocks the
	// availability answer, it only disables premium detection.
	if avail.Free {
		if price, perr := c.priceFor(ctx, domain); perr == nil {
			avail.Price = price
		} else {
			log.Printf("[Registrar] Price lookup failed for %s: %v", domain, perr)
		}
	}

	return avail, nil
}

// priceFor asks the registrar for the yearly registration price.
func (c *Client) priceFor(ctx context.Context, domain string) (float64, error) {
	reply, err := c.call(ctx, "getDomainPrice", domain)
	if err != nil {
		return 0, err
	}
	switch v := reply.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case map[string]interface{}:
		if p, ok := v["price"].(float64); ok {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unexpected price response format: %T", reply)
}

// call invokes an XML-RPC method with authentication prepended and the
// adapter timeout applied on top of the caller's context.
func (c *Client) call(ctx context.Context, method string, params ...interface{}) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	all := append([]interface{}{c.config.Username, c.config.Password}, params...)

	type rpcOutcome struct {
		reply interface{}
		err   error
	}
	done := make(chan rpcOutcome, 1)

	start := time.Now()
	go func() {
		var reply interface{}
		err := c.rpc.Call(method, all, &reply)
		done <- rpcOutcome{reply: reply, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Printf("[Registrar] %s timed out after %v", method, time.Since(start))
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			log.Printf("[Registrar] %s failed after %v: %v", method, time.Since(start), out.err)
			return nil, out.err
		}
		return out.reply, nil
	}
}

// consumeRateSlot enforces the hourly call budget, failing fast at the cap.
func (c *Client) consumeRateSlot() error {
	c.callsMutex.Lock()
	defer c.callsMutex.Unlock()

	now := time.Now()
	if now.Sub(c.hourStartTime) >= time.Hour {
		log.Printf("[Registrar] Resetting call counter, %d calls in previous hour", c.callsThisHour)
		c.callsThisHour = 0
		c.hourStartTime = now
	}
	if c.callsThisHour >= c.config.HourlyLimit {
		return errors.RateLimited("registrar API")
	}
	c.callsThisHour++
	return nil
}
