package route53

import (
	"encoding/xml"
	"fmt"
)

// ChangeAction is the verb applied to one record set in a change batch.
type ChangeAction string

const (
	ChangeCreate ChangeAction = "CREATE"
	ChangeDelete ChangeAction = "DELETE"
	ChangeUpsert ChangeAction = "UPSERT"
)

// Change is one desired record-set mutation. Values may hold a single
// string or several; each renders as its own <Value> element in order.
type Change struct {
	Action ChangeAction
	Name   string
	Type   string
	TTL    int
	Values []string
}

type changeBatchDocument struct {
	XMLName xml.Name
	Xmlns   string      `xml:"xmlns,attr"`
	Batch   changeBatch `xml:"ChangeBatch"`
}

type changeBatch struct {
	Changes changeList `xml:"Changes"`
}

// changeList exists so an empty batch still emits the <Changes> element.
type changeList struct {
	Change []changeElement `xml:"Change"`
}

type changeElement struct {
	Action    ChangeAction  `xml:"Action"`
	RecordSet recordSetBody `xml:"ResourceRecordSet"`
}

type recordSetBody struct {
	Name    string         `xml:"Name"`
	Type    string         `xml:"Type"`
	TTL     int            `xml:"TTL"`
	Records resourceRecord `xml:"ResourceRecords>ResourceRecord"`
}

type resourceRecord struct {
	Values []string `xml:"Value"`
}

// RenderChangeBatch renders changes into the XML request document for
// action. The root element is the action name with a "Request" suffix and
// carries a namespace composed from the configured service, host and API
// version. An empty changes slice renders a well-formed envelope with an
// empty change list.
//
// Values are escaped only as XML itself demands; content that is invalid
// for a record of the given type is the caller's problem and crosses the
// wire untouched.
func RenderChangeBatch(cfg Config, action Action, changes []Change) (string, error) {
	doc := changeBatchDocument{
		XMLName: xml.Name{Local: action.String() + "Request"},
		Xmlns:   fmt.Sprintf("https://%s.%s/doc/%s/", cfg.Service, cfg.Host, cfg.APIVersion),
	}
	for _, c := range changes {
		doc.Batch.Changes.Change = append(doc.Batch.Changes.Change, changeElement{
			Action: c.Action,
			RecordSet: recordSetBody{
				Name:    c.Name,
				Type:    c.Type,
				TTL:     c.TTL,
				Records: resourceRecord{Values: c.Values},
			},
		})
	}
	out, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("rendering %s change batch: %w", action, err)
	}
	return xml.Header + string(out), nil
}
