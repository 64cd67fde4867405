package pkg

func ToPtr[T any](v T) *T {
	return &v
}

func FromPtr[T any](v *T) T {
	return *v
}

// NilIfEmpty returns nil for the empty string, mirroring how optional form
// fields are stored as NULL.
func NilIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
