// -*- Mode: Go; indent-tabs-mode: t -*-

/*
 * Copyright (C) 2025 Canonical Ltd
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 3 as
 * published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package desired

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/snapcore/pcsctl/pcs"
	"github.com/snapcore/pcsctl/report"
)

// ConstraintKind is the type of a constraint.
type ConstraintKind string

const (
	KindLocation   ConstraintKind = "location"
	KindOrder      ConstraintKind = "order"
	KindColocation ConstraintKind = "colocation"
)

// Constraint is the desired state of a constraint. Exactly one of
// Location, Order and Colocation matches Kind when State is present.
type Constraint struct {
	// Name is the resource the constraint is about.
	Name  string
	Kind  ConstraintKind
	State string

	Location   *Location
	Order      *Order
	Colocation *Colocation
}

// ID is the id pcs knows the constraint by.
func (c *Constraint) ID() string {
	return fmt.Sprintf("%s_%s", c.Name, c.Kind)
}

// Location places the resource on nodes according to their scores.
type Location struct {
	Nodes []pcs.NodeScore
}

// Order starts resources in a given order: either Then after First, or
// the resources of Set in sequence.
type Order struct {
	First *pcs.OrderStep
	Then  *pcs.OrderStep
	Set   []string
}

// Colocation keeps the resource together with others.
type Colocation struct {
	With  []string
	Score string
}

// NodeScores is a list of node scores, which in YAML is either a
// mapping from node to score or a sequence of such mappings.
type NodeScores []pcs.NodeScore

// ParseNodeScores parses a list of "node=score" strings. A missing
// score means INFINITY.
func ParseNodeScores(l []string) (NodeScores, error) {
	var scores NodeScores
	for _, s := range l {
		node, score, _ := strings.Cut(s, "=")
		if node == "" {
			return nil, report.Preconditionf("invalid node score %q, expected node=score", s)
		}
		scores = append(scores, pcs.NodeScore{Node: node, Score: score})
	}
	return scores, nil
}

func decodePairs(node *yaml.Node, what string, add func(k, v string)) error {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			add(node.Content[i].Value, node.Content[i+1].Value)
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
				return fmt.Errorf("line %d: each %s must be a single key: value mapping", item.Line, what)
			}
			add(item.Content[0].Value, item.Content[1].Value)
		}
	default:
		return fmt.Errorf("line %d: %s must be a mapping or a sequence", node.Line, what)
	}
	return nil
}

func (s *NodeScores) UnmarshalYAML(node *yaml.Node) error {
	var scores NodeScores
	err := decodePairs(node, "node score", func(k, v string) {
		scores = append(scores, pcs.NodeScore{Node: k, Score: v})
	})
	if err != nil {
		return err
	}
	*s = scores
	return nil
}

// OrderSteps is a list of action/resource pairs, which in YAML is a
// sequence of single key mappings like "start: vip".
type OrderSteps []pcs.OrderStep

// ParseOrderSteps parses a list of "action=resource" strings.
func ParseOrderSteps(l []string) (OrderSteps, error) {
	var steps OrderSteps
	for _, s := range l {
		action, res, found := strings.Cut(s, "=")
		if !found || action == "" || res == "" {
			return nil, report.Preconditionf("invalid order step %q, expected action=resource", s)
		}
		steps = append(steps, pcs.OrderStep{Action: action, Resource: res})
	}
	return steps, nil
}

func (s *OrderSteps) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: order must be a sequence", node.Line)
	}
	var steps OrderSteps
	err := decodePairs(node, "order step", func(k, v string) {
		steps = append(steps, pcs.OrderStep{Action: k, Resource: v})
	})
	if err != nil {
		return err
	}
	*s = steps
	return nil
}

// ConstraintSpec is a constraint as given by the user, before it is
// checked and turned into a Constraint.
type ConstraintSpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	State string `yaml:"state"`

	Prefers NodeScores `yaml:"prefers"`
	Avoids  NodeScores `yaml:"avoids"`

	Order OrderSteps `yaml:"order"`
	Set   []string   `yaml:"set"`

	With  []string `yaml:"with"`
	Score string   `yaml:"score"`
}

func negateScore(score string) string {
	switch {
	case score == "":
		return "-INFINITY"
	case strings.HasPrefix(score, "-"):
		return score[1:]
	case strings.HasPrefix(score, "+"):
		return "-" + score[1:]
	}
	return "-" + score
}

func preferScore(score string) string {
	if score == "" {
		return "INFINITY"
	}
	return score
}

// Constraint validates the spec and returns the constraint it
// describes.
func (s *ConstraintSpec) Constraint() (*Constraint, error) {
	if s.Name == "" {
		return nil, report.Preconditionf("the constraint name is required")
	}
	c := &Constraint{
		Name:  s.Name,
		Kind:  ConstraintKind(s.Type),
		State: stateOrDefault(s.State, StatePresent),
	}
	if err := checkState("constraint", c.State, StatePresent, StateAbsent); err != nil {
		return nil, err
	}
	switch c.Kind {
	case KindLocation, KindOrder, KindColocation:
	default:
		return nil, report.Preconditionf("invalid constraint type %q, expected one of: location, order, colocation", s.Type)
	}
	if len(s.Order) > 2 {
		return nil, report.Preconditionf("Use the 'pcs constraint order set' command if you want to create a constraint for more than two resources.")
	}
	if c.State == StateAbsent {
		return c, nil
	}

	switch c.Kind {
	case KindLocation:
		if (len(s.Prefers) > 0) == (len(s.Avoids) > 0) {
			return nil, report.Preconditionf("exactly one of prefers or avoids must be given for a location constraint")
		}
		loc := &Location{}
		for _, n := range s.Prefers {
			loc.Nodes = append(loc.Nodes, pcs.NodeScore{Node: n.Node, Score: preferScore(n.Score)})
		}
		for _, n := range s.Avoids {
			loc.Nodes = append(loc.Nodes, pcs.NodeScore{Node: n.Node, Score: negateScore(n.Score)})
		}
		c.Location = loc
	case KindOrder:
		switch {
		case len(s.Order) > 0 && len(s.Set) > 0:
			return nil, report.Preconditionf("either the order or set config keys must be provided when type is order, not both")
		case len(s.Order) == 2:
			c.Order = &Order{First: &s.Order[0], Then: &s.Order[1]}
		case len(s.Order) > 0:
			return nil, report.Preconditionf("an order constraint needs exactly two steps")
		case len(s.Set) >= 2:
			c.Order = &Order{Set: s.Set}
		case len(s.Set) > 0:
			return nil, report.Preconditionf("an order set needs at least two resources")
		default:
			return nil, report.Preconditionf("either the order or set config keys must be provided when type is order")
		}
	case KindColocation:
		if len(s.With) == 0 {
			return nil, report.Preconditionf("the with config key must be provided when type is colocation")
		}
		c.Colocation = &Colocation{With: s.With, Score: s.Score}
	}
	return c, nil
}

func (s *ConstraintSpec) Validate() error {
	_, err := s.Constraint()
	return err
}
