package domain

type ReceiptIdentifier string

func (i ReceiptIdentifier) String() string {
	return string(i)
}

// Receipt stores the metadata of an uploaded receipt file. The file itself
// lives in the filesystem repository; this record only references it.
type Receipt struct {
	BaseModel

	Identifier ReceiptIdentifier `gorm:"primaryKey;column:identifier"`
	ExpenseId  ExpenseIdentifier `gorm:"index;column:expense_id"`

	FileName  string // original client-side filename
	FilePath  string // path relative to the upload base directory
	MimeType  string
	SizeBytes int64
}
