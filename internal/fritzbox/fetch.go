package fritzbox

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/muurk/fritz-profiles/internal/logging"
)

const (
	// DataPath is the data endpoint, relative to the router base URL
	DataPath = "/data.lua"

	// UserListPage is the assignment page the data endpoint serves for
	// oldpage requests; it is also the commit target for profile changes
	UserListPage = "/internet/kids_userlist.lua"

	pageProfiles = "kidPro"
	pageDevices  = "netDev"
)

// Fetcher reads inventory pages from the data endpoint for one session
type Fetcher struct {
	transport Transport
	sid       string
}

// NewFetcher creates a fetcher bound to an authenticated session id
func NewFetcher(transport Transport, sid string) *Fetcher {
	return &Fetcher{transport: transport, sid: sid}
}

func (f *Fetcher) baseForm() url.Values {
	form := url.Values{}
	form.Set("xhr", "1")
	form.Set("sid", f.sid)
	return form
}

func (f *Fetcher) pageForm(page string) url.Values {
	form := f.baseForm()
	form.Set("no_sidrenew", "")
	form.Set("page", page)
	return form
}

// FetchProfiles returns the profiles listed on the profile page, in page order
func (f *Fetcher) FetchProfiles(ctx context.Context) ([]Profile, error) {
	logging.Info("Fetching available profiles")

	body, err := f.transport.PostForm(ctx, DataPath, f.pageForm(pageProfiles))
	if err != nil {
		return nil, err
	}
	return ParseProfiles(body)
}

// FetchDevices returns active devices followed by passive devices, each in
// source order. SecondaryID and ProfileID are left empty.
func (f *Fetcher) FetchDevices(ctx context.Context) ([]Device, error) {
	logging.Info("Fetching devices")

	body, err := f.transport.PostForm(ctx, DataPath, f.pageForm(pageDevices))
	if err != nil {
		return nil, err
	}
	return ParseDevices(body)
}

// FetchAssignments returns the device rows of the profile assignment page
func (f *Fetcher) FetchAssignments(ctx context.Context) ([]AssignmentRow, error) {
	logging.Info("Fetching device profiles")

	form := f.baseForm()
	form.Set("cancel", "")
	form.Set("oldpage", UserListPage)

	body, err := f.transport.PostForm(ctx, DataPath, form)
	if err != nil {
		return nil, err
	}
	return ParseAssignments(body)
}

// ParseProfiles extracts profiles from the uiProfileList table's own rows.
// Rows without a name cell (headers, footers) are skipped.
func ParseProfiles(body []byte) ([]Profile, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, NewParseError("failed to parse profile page", err)
	}

	profiles := []Profile{}
	doc.Find("table#uiProfileList > tbody > tr, table#uiProfileList > tr").Each(func(_ int, row *goquery.Selection) {
		span := row.ChildrenFiltered("td.name").ChildrenFiltered("span").First()
		if span.Length() == 0 || span.Text() == "" {
			return
		}

		id, ok := row.ChildrenFiltered("td.btncolumn").
			ChildrenFiltered(`button[name="edit"]`).First().Attr("value")
		if !ok {
			logging.Debug("Skipping profile row without edit button", zap.String("name", span.Text()))
			return
		}

		profiles = append(profiles, Profile{ID: id, Name: span.Text()})
	})

	return profiles, nil
}

type netDevEntry struct {
	UID  string `json:"UID"`
	Name string `json:"name"`
}

type netDevResponse struct {
	Data struct {
		Active  []netDevEntry `json:"active"`
		Passive []netDevEntry `json:"passive"`
	} `json:"data"`
}

// ParseDevices decodes the netDev JSON payload
func ParseDevices(body []byte) ([]Device, error) {
	var resp netDevResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewParseError("failed to parse device list", err)
	}

	devices := make([]Device, 0, len(resp.Data.Active)+len(resp.Data.Passive))
	for _, e := range resp.Data.Active {
		devices = append(devices, Device{PrimaryID: e.UID, Name: e.Name, Active: true})
	}
	for _, e := range resp.Data.Passive {
		devices = append(devices, Device{PrimaryID: e.UID, Name: e.Name, Active: false})
	}
	return devices, nil
}

// ParseAssignments extracts device rows from the uiDevices table. Rows of
// tables nested inside a cell are ignored. Only rows with exactly five cells and a select control in the fourth cell qualify;
// everything else is skipped.
func ParseAssignments(body []byte) ([]AssignmentRow, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, NewParseError("failed to parse device profile page", err)
	}

	rows := []AssignmentRow{}
	doc.Find("table#uiDevices > tbody > tr, table#uiDevices > tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() != 5 {
			return
		}
		sel := cells.Eq(3).ChildrenFiltered("select").First()
		if sel.Length() == 0 {
			return
		}

		name, _ := sel.Attr("name")
		_, id, found := strings.Cut(name, ":")
		if !found {
			logging.Debug("Skipping device row with unexpected select name", zap.String("select", name))
			return
		}

		profile, ok := sel.ChildrenFiltered("option[selected]").First().Attr("value")
		if !ok {
			logging.Debug("Skipping device row without selected profile", zap.String("device_id", id))
			return
		}

		rows = append(rows, AssignmentRow{
			Name:        cells.Eq(0).ChildrenFiltered("span").First().Text(),
			SecondaryID: id,
			ProfileID:   profile,
		})
	})

	return rows, nil
}
