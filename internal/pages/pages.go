package pages

// FallbackTitle is used for filenames that are not in the table.
const FallbackTitle = "UWS Service"

// Entry pairs a page filename with the heading shown in its top navbar.
type Entry struct {
	Filename string
	Title    string
}

// table is the fixed set of UWS service pages, in processing order.
var table = []Entry{
	{"uws-billing.html", "UWS-Billing & Cost Management"},
	{"uws-monitoring.html", "UWS-Monitoring Dashboard"},
	{"uws-s3.html", "UWS-S3 Cloud Storage"},
	{"uws-compute.html", "UWS-Compute Container Service"},
	{"uws-lambda.html", "UWS-Lambda Function Service"},
	{"uws-rdb.html", "UWS-RDB Relational Database"},
	{"uws-sqs.html", "UWS-SQS Message Queue"},
	{"uws-nosql.html", "UWS-NoSQL Document Database"},
	{"uws-ai.html", "UWS-AI Serverless AI"},
	{"uws-secrets.html", "UWS-Secrets Manager"},
	{"uws-dns.html", "UWS-DNS Domain Service"},
	{"uws-iam.html", "UWS-IAM Identity Management"},
}

// All returns a copy of the page table.
func All() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

// Filenames returns the page filenames in table order.
func Filenames() []string {
	names := make([]string, len(table))
	for i, e := range table {
		names[i] = e.Filename
	}
	return names
}

// Title returns the page title for a filename, or FallbackTitle.
func Title(filename string) string {
	for _, e := range table {
		if e.Filename == filename {
			return e.Title
		}
	}
	return FallbackTitle
}
