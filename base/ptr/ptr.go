package ptr

// String returns a pointer to value, for optional query params.
func String(value string) *string {
	return &value
}

func Int64(value int64) *int64 {
	return &value
}
