package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// OffsetParams are the offset/limit paging parameters used by listing
// endpoints: "from" is the index of the first element, "size" the page size.
type OffsetParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

// Valid reports whether the paging window makes sense.
func (p OffsetParams) Valid() bool {
	return p.From >= 0 && p.Size > 0
}
