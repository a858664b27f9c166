package augment

import (
	"fmt"
	"math/rand/v2"
)

// Pipeline applies a sequence of transforms to an item in order.
//
// Consecutive affine transforms are not applied one by one: each is resolved
// against the running bounds, the resolved maps are composed into a single
// LinearMap, and the data is resampled exactly once. Composition is
// associative, so a run of N affine specifications costs one resampling pass
// instead of N.
type Pipeline struct {
	tfms []Transform
}

// NewPipeline creates a pipeline over the given transforms. The pipeline is
// itself a Transform and can be nested.
func NewPipeline(tfms ...Transform) *Pipeline {
	return &Pipeline{tfms: append([]Transform(nil), tfms...)}
}

// RandState draws one state per child transform. The caller passes the
// returned value to Apply; drawing once and reusing it is what makes an
// image and its paired mask receive identical augmentation.
func (p *Pipeline) RandState(rng *rand.Rand) any {
	states := make([]any, len(p.tfms))
	for i, tfm := range p.tfms {
		states[i] = tfm.RandState(rng)
	}
	return states
}

// Apply runs the item through every transform. state must be nil or the
// value drawn by RandState for this application.
func (p *Pipeline) Apply(item Item, state any) (Item, error) {
	states, err := p.childStates(state)
	if err != nil {
		return nil, err
	}

	cur := item
	for i := 0; i < len(p.tfms); {
		at, ok := p.tfms[i].(AffineTransform)
		if !ok {
			next, err := p.tfms[i].Apply(cur, states[i])
			if err != nil {
				return nil, fmt.Errorf("augment: pipeline step %d: %w", i, err)
			}
			cur = next
			i++
			continue
		}

		// Collapse the run of affine transforms starting at i into one
		// resolved map, tracking the bounds each step would have produced.
		b, err := cur.Bounds()
		if err != nil {
			return nil, fmt.Errorf("augment: pipeline step %d: %w", i, err)
		}
		total, err := at.ResolveAffine(b, states[i])
		if err != nil {
			return nil, fmt.Errorf("augment: pipeline step %d: %w", i, err)
		}
		bounds := total.OutputBounds(b)
		o := specOptions(at)

		j := i + 1
		for ; j < len(p.tfms); j++ {
			next, ok := p.tfms[j].(AffineTransform)
			if !ok {
				break
			}
			m, err := next.ResolveAffine(bounds, states[j])
			if err != nil {
				return nil, fmt.Errorf("augment: pipeline step %d: %w", j, err)
			}
			total = m.Compose(total)
			bounds = m.OutputBounds(bounds)
		}

		cur, err = warpItem(cur, total, o)
		if err != nil {
			return nil, fmt.Errorf("augment: pipeline steps %d..%d: %w", i, j-1, err)
		}
		i = j
	}
	return cur, nil
}

// childStates unpacks the pipeline's drawn state into per-child states.
// A nil state stands for "all children deterministic".
func (p *Pipeline) childStates(state any) ([]any, error) {
	if state == nil {
		return make([]any, len(p.tfms)), nil
	}
	states, ok := state.([]any)
	if !ok || len(states) != len(p.tfms) {
		return nil, fmt.Errorf("augment: pipeline state %T does not match %d transforms",
			state, len(p.tfms))
	}
	return states, nil
}

// optioned is implemented by the scale specifications in this package so a
// collapsed affine run can reuse their resampling configuration.
type optioned interface {
	scaleOpts() scaleOptions
}

// specOptions returns the resampling options of a spec, or the defaults for
// affine transforms from outside this package.
func specOptions(at AffineTransform) scaleOptions {
	if o, ok := at.(optioned); ok {
		return o.scaleOpts()
	}
	return defaultScaleOptions()
}
