package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netops-tools/dnac-console/internal/dnac"
)

// FieldKind selects how a form field is edited and validated.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldSelect
)

// OptionSource names a remote list used to fill a select field.
type OptionSource string

// SourceSites fills a select field with the site hierarchy.
const SourceSites OptionSource = "sites"

// Field is one input of a form.
type Field struct {
	Key      string
	Label    string
	Kind     FieldKind
	Required bool
	Options  []string
	Source   OptionSource
	Default  string
}

// Form is a fixed list of fields plus the request emitted on submit.
type Form struct {
	ID     string
	Title  string
	Fields []Field
	// Submit turns the collected values into a request message. An error is
	// shown on the form and nothing is sent.
	Submit func(values map[string]string) (tea.Msg, error)
}

// FormRequest asks the UI to open a form.
type FormRequest struct {
	Form Form
}

// PollRequest asks the UI to wait on a remote task.
type PollRequest struct {
	OperationID string
	Label       string
}

// CreateSiteRequest asks the UI to create a site and wait for its task.
type CreateSiteRequest struct {
	Site dnac.SiteRequest
}

func openForm(build func() Form) Action {
	return func(Context, Item) tea.Cmd {
		return func() tea.Msg { return FormRequest{Form: build()} }
	}
}

// RFModels lists the floor RF models accepted by the controller.
var RFModels = []string{
	"Cubes And Walled Offices",
	"Drywall Office Only",
	"Indoor High Ceiling",
	"Outdoor Open Space",
}

// AddSiteForm collects a new area, building or floor.
func AddSiteForm() Form {
	return Form{
		ID:    "sites:add",
		Title: "Add Site",
		Fields: []Field{
			{Key: "type", Label: "Site Type", Kind: FieldSelect, Required: true, Options: []string{"area", "building", "floor"}, Default: "area"},
			{Key: "name", Label: "Site Name", Kind: FieldText, Required: true},
			{Key: "parent", Label: "Parent Site", Kind: FieldSelect, Required: true, Source: SourceSites, Options: []string{dnac.GlobalSite.Name}, Default: dnac.GlobalSite.Name},
			{Key: "latitude", Label: "Latitude", Kind: FieldNumber},
			{Key: "longitude", Label: "Longitude", Kind: FieldNumber},
			{Key: "address", Label: "Address", Kind: FieldText},
			{Key: "floor", Label: "Floor Number", Kind: FieldNumber},
			{Key: "rf_model", Label: "RF Model", Kind: FieldSelect, Options: RFModels},
		},
		Submit: submitSite,
	}
}

func submitSite(values map[string]string) (tea.Msg, error) {
	siteType, err := dnac.ParseSiteType(values["type"])
	if err != nil {
		return nil, err
	}
	req := dnac.SiteRequest{
		Type:       siteType,
		Name:       strings.TrimSpace(values["name"]),
		ParentName: strings.TrimSpace(values["parent"]),
	}
	switch siteType {
	case dnac.SiteBuilding:
		lat, latOK, err := optionalFloat(values["latitude"])
		if err != nil {
			return nil, fmt.Errorf("latitude: %w", err)
		}
		long, longOK, err := optionalFloat(values["longitude"])
		if err != nil {
			return nil, fmt.Errorf("longitude: %w", err)
		}
		if latOK != longOK {
			return nil, errors.New("latitude and longitude must be given together")
		}
		if latOK {
			req.Latitude, req.Longitude = &lat, &long
		}
		req.Address = strings.TrimSpace(values["address"])
	case dnac.SiteFloor:
		if raw := strings.TrimSpace(values["floor"]); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("floor number: %q is not an integer", raw)
			}
			req.FloorNumber = &n
		}
		req.RFModel = values["rf_model"]
	}
	return CreateSiteRequest{Site: req}, nil
}

func optionalFloat(raw string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%q is not a number", raw)
	}
	return v, true, nil
}

// TaskStatusForm asks for a task id to wait on.
func TaskStatusForm() Form {
	return Form{
		ID:    "task",
		Title: "Check Task Status",
		Fields: []Field{
			{Key: "task_id", Label: "Task ID", Kind: FieldText, Required: true},
		},
		Submit: func(values map[string]string) (tea.Msg, error) {
			id := strings.TrimSpace(values["task_id"])
			return PollRequest{OperationID: id, Label: "Task " + id}, nil
		},
	}
}
