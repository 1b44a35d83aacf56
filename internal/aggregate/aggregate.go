// Package aggregate is the model-aggregator stage: it groups projected
// member items by their owning type into TypeUnits, the per-type emission
// units the validator checks and the emitter renders. Output order is fully
// deterministic (package path, then type name) regardless of projection
// order, and member order within a unit preserves source order, which the
// projector already guarantees.
package aggregate

import (
	"sort"

	"obsgen/internal/model"
	"obsgen/internal/project"
)

// Units groups items into one TypeUnit per annotated type.
func Units(items []project.Item) []*model.TypeUnit {
	type key struct {
		pkg string
		typ string
	}

	byType := make(map[key]*model.TypeUnit)
	order := make([]key, 0, len(items))

	for i := range items {
		it := &items[i]
		k := key{pkg: it.PkgPath, typ: it.TypeName}
		u, ok := byType[k]
		if !ok {
			u = &model.TypeUnit{
				PkgPath:  it.PkgPath,
				PkgName:  it.PkgName,
				TypeName: it.TypeName,
				Dir:      it.Dir,
				Facts:    it.Facts,
				TypeSpan: it.TypeSpan,
			}
			byType[k] = u
			order = append(order, k)
		}

		switch {
		case it.Observable != nil:
			// The projector enforces first-occurrence-wins, so a second
			// observable here cannot happen; keep the first regardless.
			if u.Observable == nil {
				u.Observable = it.Observable
			}
		case it.Property != nil:
			u.Properties = append(u.Properties, *it.Property)
		case it.Command != nil:
			u.Commands = append(u.Commands, *it.Command)
		case it.Recipient != nil:
			if u.Recipient == nil {
				u.Recipient = it.Recipient
			}
		}
	}

	units := make([]*model.TypeUnit, 0, len(order))
	for _, k := range order {
		units = append(units, byType[k])
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].PkgPath != units[j].PkgPath {
			return units[i].PkgPath < units[j].PkgPath
		}
		return units[i].TypeName < units[j].TypeName
	})
	return units
}

// Changed partitions units against a previous fingerprint index, returning
// the units whose content digest moved (or are new) and the index for the
// next run. Unchanged units can skip emission entirely: equal fingerprints
// guarantee byte-identical output.
func Changed(units []*model.TypeUnit, prev map[string]model.Digest) (changed []*model.TypeUnit, next map[string]model.Digest) {
	next = make(map[string]model.Digest, len(units))
	for _, u := range units {
		id := u.PkgPath + "." + u.TypeName
		fp := u.Fingerprint()
		next[id] = fp
		if old, ok := prev[id]; !ok || old != fp {
			changed = append(changed, u)
		}
	}
	return changed, next
}
