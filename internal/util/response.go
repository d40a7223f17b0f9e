package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}

// Page wraps a listing with its pagination metadata.
func Page(key string, items any, total int64, limit, offset, count int) Envelope {
	return Envelope{
		key: items,
		"pagination": Envelope{
			"limit":  limit,
			"offset": offset,
			"total":  total,
			"count":  count,
		},
	}
}
