package dnac

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/netops-tools/dnac-console/internal/poller"
)

const (
	taskPath           = "/dna/intent/api/v1/task/"
	sitePath           = "/dna/intent/api/v1/site"
	virtualNetworkPath = "/dna/intent/api/v2/virtual-network"
)

// ErrNoTaskID is returned when a mutation is accepted without a task handle.
var ErrNoTaskID = errors.New("response carried no task id")

// TaskStatus is the body of GET task/{id}.
type TaskStatus struct {
	ID            string          `json:"id"`
	IsError       bool            `json:"isError"`
	FailureReason string          `json:"failureReason"`
	ErrorCode     string          `json:"errorCode"`
	Progress      string          `json:"progress"`
	Data          string          `json:"data"`
	StartTime     json.RawMessage `json:"startTime,omitempty"`
	EndTime       json.RawMessage `json:"endTime,omitempty"`
}

// Completed reports whether the controller stamped an end time.
func (t TaskStatus) Completed() bool {
	v := bytes.TrimSpace(t.EndTime)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}

// PollStatus converts the task body into the poller's view of it.
func (t TaskStatus) PollStatus() poller.Status {
	return poller.Status{
		Completed:     t.Completed(),
		IsError:       t.IsError,
		FailureReason: t.FailureReason,
		ErrorCode:     t.ErrorCode,
		Progress:      t.Progress,
		Payload:       t.Data,
	}
}

// TaskResponse is the envelope around TaskStatus.
type TaskResponse struct {
	Response TaskStatus `json:"response"`
	Version  string     `json:"version"`
}

// Task fetches the raw status of a task.
func (c *Client) Task(ctx context.Context, id string) (TaskStatus, error) {
	var out TaskResponse
	if err := c.do(ctx, http.MethodGet, taskPath+url.PathEscape(id), nil, &out); err != nil {
		return TaskStatus{}, err
	}
	return out.Response, nil
}

// FetchOperationStatus implements poller.StatusFetcher.
func (c *Client) FetchOperationStatus(ctx context.Context, id string) (poller.Status, error) {
	task, err := c.Task(ctx, id)
	if err != nil {
		return poller.Status{}, err
	}
	return task.PollStatus(), nil
}

// FabricEnabled reports whether any SDA virtual network exists. The endpoint
// answers with either a bare list or a {"response": [...]} envelope.
func (c *Client) FabricEnabled(ctx context.Context) (bool, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, virtualNetworkPath, nil, &raw); err != nil {
		return false, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false, nil
	}
	var list []json.RawMessage
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return false, fmt.Errorf("decode virtual networks: %w", err)
		}
		return len(list) > 0, nil
	}
	var envelope struct {
		Response []json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return false, fmt.Errorf("decode virtual networks: %w", err)
	}
	return len(envelope.Response) > 0, nil
}

// Site is one entry of the site hierarchy.
type Site struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ParentID          string `json:"parentId"`
	SiteNameHierarchy string `json:"siteNameHierarchy"`
}

// Path returns the hierarchy name used as parentName when creating children.
func (s Site) Path() string {
	if s.SiteNameHierarchy != "" {
		return s.SiteNameHierarchy
	}
	return s.Name
}

// GlobalSite is the implicit root of every hierarchy.
var GlobalSite = Site{ID: "global", Name: "Global", SiteNameHierarchy: "Global"}

// ListSites returns Global followed by every named site.
func (c *Client) ListSites(ctx context.Context) ([]Site, error) {
	var out struct {
		Response []Site `json:"response"`
	}
	if err := c.do(ctx, http.MethodGet, sitePath, nil, &out); err != nil {
		return nil, err
	}
	sites := make([]Site, 0, len(out.Response)+1)
	sites = append(sites, GlobalSite)
	for _, s := range out.Response {
		if s.ID == "" || s.Name == "" || strings.EqualFold(s.Path(), GlobalSite.Name) {
			continue
		}
		sites = append(sites, s)
	}
	return sites, nil
}

// SiteType is area, building or floor.
type SiteType string

const (
	SiteArea     SiteType = "area"
	SiteBuilding SiteType = "building"
	SiteFloor    SiteType = "floor"
)

// ParseSiteType accepts the three site kinds case-insensitively.
func ParseSiteType(s string) (SiteType, error) {
	switch t := SiteType(strings.ToLower(strings.TrimSpace(s))); t {
	case SiteArea, SiteBuilding, SiteFloor:
		return t, nil
	}
	return "", fmt.Errorf("unknown site type %q", s)
}

// SiteRequest describes a site to create. Building and floor attributes are
// ignored for other types.
type SiteRequest struct {
	Type        SiteType
	Name        string
	ParentName  string
	Latitude    *float64
	Longitude   *float64
	Address     string
	FloorNumber *int
	RFModel     string
}

// MarshalJSON renders the {"type": ..., "site": {type: {...}}} payload.
func (r SiteRequest) MarshalJSON() ([]byte, error) {
	attrs := map[string]interface{}{
		"name":       r.Name,
		"parentName": r.ParentName,
	}
	switch r.Type {
	case SiteBuilding:
		if r.Latitude != nil && r.Longitude != nil {
			attrs["latitude"] = *r.Latitude
			attrs["longitude"] = *r.Longitude
		}
		if r.Address != "" {
			attrs["address"] = r.Address
		}
	case SiteFloor:
		if r.FloorNumber != nil {
			attrs["floorNumber"] = *r.FloorNumber
		}
		if r.RFModel != "" {
			attrs["rfModel"] = r.RFModel
		}
	}
	return json.Marshal(map[string]interface{}{
		"type": string(r.Type),
		"site": map[string]interface{}{string(r.Type): attrs},
	})
}

// CreateSite submits r and returns the task id to poll.
func (c *Client) CreateSite(ctx context.Context, r SiteRequest) (string, error) {
	if _, err := ParseSiteType(string(r.Type)); err != nil {
		return "", err
	}
	if strings.TrimSpace(r.Name) == "" {
		return "", errors.New("site name is required")
	}
	var out struct {
		TaskID      string `json:"taskId"`
		ExecutionID string `json:"executionId"`
		Response    struct {
			TaskID string `json:"taskId"`
		} `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, sitePath, r, &out); err != nil {
		return "", err
	}
	for _, id := range []string{out.TaskID, out.Response.TaskID, out.ExecutionID} {
		if id != "" {
			return id, nil
		}
	}
	return "", ErrNoTaskID
}
