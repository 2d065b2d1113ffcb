package observability

const (
	MUsecaseRequests         MetricKey = "usecase_requests_total"
	MUsecaseDuration         MetricKey = "usecase_duration_seconds"
	MHTTPRequests            MetricKey = "http_requests_total"
	MHTTPRequestDuration     MetricKey = "http_request_duration_seconds"
	MExternalRequests        MetricKey = "external_requests_total"
	MExternalRequestDuration MetricKey = "external_request_duration_seconds"
)

// MetricSpec describes how a key is registered with the metrics backend.
type MetricSpec struct {
	Key    MetricKey
	Help   string
	Labels []string
}

var (
	CounterSpecs = []MetricSpec{
		{Key: MUsecaseRequests, Help: "Total number of use case invocations.", Labels: []string{"use_case", "outcome"}},
		{Key: MHTTPRequests, Help: "Total number of HTTP requests.", Labels: []string{"method", "route", "status"}},
		{Key: MExternalRequests, Help: "Calls to collaborators outside the ledger core.", Labels: []string{"peer", "endpoint", "outcome"}},
	}
	HistogramSpecs = []MetricSpec{
		{Key: MUsecaseDuration, Help: "Duration of use case execution in seconds.", Labels: []string{"use_case"}},
		{Key: MHTTPRequestDuration, Help: "Duration of HTTP requests in seconds.", Labels: []string{"method", "route", "status"}},
		{Key: MExternalRequestDuration, Help: "Duration of collaborator calls in seconds.", Labels: []string{"peer", "endpoint"}},
	}
)
