package codegen

import (
	"fmt"
	"slices"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// commentIndex is the structural-path comment lookup for one file.
// Locations with empty or odd-length paths do not address a declaration
// and are discarded up front; the rest are sorted so lookups are exact
// binary searches.
type commentIndex struct {
	locations []*descriptorpb.SourceCodeInfo_Location
}

func newCommentIndex(info *descriptorpb.SourceCodeInfo) *commentIndex {
	var locations []*descriptorpb.SourceCodeInfo_Location
	for _, loc := range info.GetLocation() {
		if n := len(loc.GetPath()); n > 0 && n%2 == 0 {
			locations = append(locations, loc)
		}
	}
	slices.SortStableFunc(locations, func(a, b *descriptorpb.SourceCodeInfo_Location) int {
		return slices.Compare(a.GetPath(), b.GetPath())
	})
	return &commentIndex{locations: locations}
}

// lookup finds the location for an exact structural path. The walker
// only looks up paths it pushed itself, so a miss is an internal
// consistency fault, not a recoverable condition.
func (idx *commentIndex) lookup(path []int32) (*descriptorpb.SourceCodeInfo_Location, error) {
	i, ok := slices.BinarySearchFunc(idx.locations, path,
		func(loc *descriptorpb.SourceCodeInfo_Location, path []int32) int {
			return slices.Compare(loc.GetPath(), path)
		})
	if !ok {
		return nil, fmt.Errorf("no source location for path %v", path)
	}
	return idx.locations[i], nil
}

// Comments holds the documentation attached to one descriptor location.
type Comments struct {
	LeadingDetached [][]string
	Leading         []string
	Trailing        []string
}

func newComments(loc *descriptorpb.SourceCodeInfo_Location) Comments {
	var c Comments
	for _, detached := range loc.GetLeadingDetachedComments() {
		c.LeadingDetached = append(c.LeadingDetached, commentLines(detached))
	}
	if loc.LeadingComments != nil {
		c.Leading = commentLines(loc.GetLeadingComments())
	}
	if loc.TrailingComments != nil {
		c.Trailing = commentLines(loc.GetTrailingComments())
	}
	return c
}

func commentLines(comment string) []string {
	return strings.Split(strings.TrimSuffix(comment, "\n"), "\n")
}

// appendWithIndent renders the leading comments as doc lines at the
// given indentation depth, one line per source line in original order.
func (c Comments) appendWithIndent(depth int, buf *strings.Builder) {
	for _, line := range c.Leading {
		for i := 0; i < depth; i++ {
			buf.WriteString("    ")
		}
		buf.WriteString("///")
		buf.WriteString(line)
		buf.WriteString("\n")
	}
}
