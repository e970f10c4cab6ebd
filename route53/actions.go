package route53

import "net/http"

// Action identifies one operation of the Route 53 REST API.
//
// The set of actions is closed: every variant carries a fixed descriptor
// (HTTP method, path template, required parameters) resolved from a
// read-only table at startup.
type Action int

const (
	CreateHostedZone Action = iota
	GetHostedZone
	ListHostedZones
	DeleteHostedZone
	ChangeResourceRecordSets
	ListResourceRecordSets
	GetChange
	CreateHealthCheck
	GetHealthCheck
	ListHealthChecks
	DeleteHealthCheck
)

// descriptor is the wire shape of one action. Path templates name their
// placeholders with double-underscore delimiters, e.g. "__zoneId__";
// Build substitutes each from the request parameters.
type descriptor struct {
	method   string
	path     string
	required []string
}

var descriptors = map[Action]descriptor{
	CreateHostedZone:         {http.MethodPost, "hostedzone", []string{"content"}},
	GetHostedZone:            {http.MethodGet, "hostedzone/__zoneId__", []string{"zoneId"}},
	ListHostedZones:          {http.MethodGet, "hostedzone", nil},
	DeleteHostedZone:         {http.MethodDelete, "hostedzone/__zoneId__", []string{"zoneId"}},
	ChangeResourceRecordSets: {http.MethodPost, "hostedzone/__zoneId__/rrset", []string{"zoneId", "content"}},
	ListResourceRecordSets:   {http.MethodGet, "hostedzone/__zoneId__/rrset", []string{"zoneId"}},
	GetChange:                {http.MethodGet, "change/__changeId__", []string{"changeId"}},
	CreateHealthCheck:        {http.MethodPost, "healthcheck", []string{"content"}},
	GetHealthCheck:           {http.MethodGet, "healthcheck/__id__", []string{"id"}},
	ListHealthChecks:         {http.MethodGet, "healthcheck", nil},
	DeleteHealthCheck:        {http.MethodDelete, "healthcheck/__id__", []string{"id"}},
}

var actionNames = map[Action]string{
	CreateHostedZone:         "CreateHostedZone",
	GetHostedZone:            "GetHostedZone",
	ListHostedZones:          "ListHostedZones",
	DeleteHostedZone:         "DeleteHostedZone",
	ChangeResourceRecordSets: "ChangeResourceRecordSets",
	ListResourceRecordSets:   "ListResourceRecordSets",
	GetChange:                "GetChange",
	CreateHealthCheck:        "CreateHealthCheck",
	GetHealthCheck:           "GetHealthCheck",
	ListHealthChecks:         "ListHealthChecks",
	DeleteHealthCheck:        "DeleteHealthCheck",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "UnknownAction"
}

// Actions returns every known action in declaration order.
func Actions() []Action {
	all := make([]Action, 0, len(descriptors))
	for a := CreateHostedZone; a <= DeleteHealthCheck; a++ {
		all = append(all, a)
	}
	return all
}
