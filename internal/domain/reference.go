package domain

// BuildReferenceSheet lists every number of r in ascending order.
func BuildReferenceSheet(r Range) (ReferenceSheet, error) {
	if err := r.Validate(); err != nil {
		return ReferenceSheet{}, err
	}
	return ReferenceSheet{Range: r, Numbers: r.Values()}, nil
}
