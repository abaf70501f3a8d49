// internal/discovery/discovery.go
package discovery

import (
	"context"
	"fmt"
	"sort"

	"go.bug.st/serial/enumerator"
)

// ListFunc matches enumerator.GetDetailedPortsList.
type ListFunc func() ([]*enumerator.PortDetails, error)

// Enumerator lists serial ports whose USB product string equals Product.
type Enumerator struct {
	Product string
	list    ListFunc
}

// New returns an Enumerator backed by the OS port list.
func New(product string) *Enumerator {
	return &Enumerator{Product: product, list: enumerator.GetDetailedPortsList}
}

// NewWithList is New with a custom port lister.
func NewWithList(product string, list ListFunc) *Enumerator {
	return &Enumerator{Product: product, list: list}
}

// Ports returns matching port names, de-duplicated and sorted.
func (e *Enumerator) Ports(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	details, err := e.list()
	if err != nil {
		return nil, fmt.Errorf("discovery: list ports: %w", err)
	}

	set := make(map[string]struct{})
	for _, d := range details {
		if d == nil || d.Name == "" {
			continue
		}
		if d.Product != e.Product {
			continue
		}
		set[d.Name] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Static is a fixed port list, used when ports are configured explicitly.
type Static []string

func (s Static) Ports(context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}
