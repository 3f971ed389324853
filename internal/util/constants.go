package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeZip         = "application/zip"
	MimeOctetStream = "application/octet-stream"
)

// Extensions accepted for lesson resource uploads.
var AllowedResourceExtensions = []string{".pdf", ".zip", ".png", ".jpg", ".jpeg", ".md", ".txt"}
