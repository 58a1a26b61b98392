// Package comments recovers declaration comments from the SourceCodeInfo
// attached to a file descriptor.
package comments

import (
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Leading returns the leading comment of the location whose path equals
// path. Declarations use this for their own doc comment.
func Leading(locs []*descriptorpb.SourceCodeInfo_Location, path Path) (string, error) {
	if err := path.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, loc := range locs {
		if Path(loc.GetPath()).Equal(path) {
			b.WriteString(loc.GetLeadingComments())
		}
	}
	return b.String(), nil
}

// Attached returns the leading and trailing comments of every location whose
// path starts with prefix, in location order.
func Attached(locs []*descriptorpb.SourceCodeInfo_Location, prefix Path) (string, error) {
	if err := prefix.Validate(); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, loc := range locs {
		if Path(loc.GetPath()).HasPrefix(prefix) {
			b.WriteString(loc.GetLeadingComments())
			b.WriteString(loc.GetTrailingComments())
		}
	}
	return b.String(), nil
}

// Resolver looks up comments for one file. Malformed paths are logged and
// resolve to no description.
type Resolver struct {
	file string
	locs []*descriptorpb.SourceCodeInfo_Location
	log  logrus.FieldLogger
}

func NewResolver(file string, info *descriptorpb.SourceCodeInfo, log logrus.FieldLogger) *Resolver {
	return &Resolver{file: file, locs: info.GetLocation(), log: log}
}

func (r *Resolver) Leading(path Path) string {
	desc, err := Leading(r.locs, path)
	if err != nil {
		r.degrade(err)
	}
	return desc
}

func (r *Resolver) Attached(prefix Path) string {
	desc, err := Attached(r.locs, prefix)
	if err != nil {
		r.degrade(err)
	}
	return desc
}

func (r *Resolver) degrade(err error) {
	if r.log == nil {
		return
	}
	r.log.WithField("file", r.file).WithError(err).Debug("dropping description")
}
