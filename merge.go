package route

import (
	"fmt"
	"log/slog"
	"strings"
)

// Merge copies the routes of every router in routers into r. When r has a
// base path, the merged routes are nested below it. Matchers known to a
// source but not to r are copied along.
//
// By default a handler of a later source replaces an existing one for the
// same route and method. With MergeConflicts(ConflictStrict) such an
// overlap is reported as ErrMergeConflict and nothing is merged.
func (r *Router) Merge(routers ...*Router) error {
	for _, src := range routers {
		if src == r {
			return fmt.Errorf("merge: %w", ErrMergeSelf)
		}
	}

	base := splitSegments(r.basePath)
	if r.mergeConflicts == ConflictStrict {
		// Sources may overlap each other as well, so check them against a
		// scratch trie that accumulates the previous ones.
		scratch := &node{}
		if existing := r.root.lookup(base); existing != nil {
			mergeNode(scratch, existing, "")
		}
		for _, src := range routers {
			if err := conflicts(scratch, &src.root); err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			mergeNode(scratch, &src.root, "")
		}
	}

	target := &r.root
	for _, s := range base {
		target = target.staticChild(s)
	}
	for _, src := range routers {
		for name, fn := range src.matchers {
			if _, ok := r.matchers[name]; !ok {
				r.matchers[name] = fn
			}
		}
		mergeNode(target, &src.root, r.basePath)
		r.logger.Debug("router merged",
			slog.String("base_path", r.basePath),
			slog.Int("routes", len(src.Routes())),
		)
	}
	return nil
}

// mergeNode merges src into dst. Patterns of newly populated nodes get
// prefix prepended.
func mergeNode(dst, src *node, prefix string) {
	if src.store != nil {
		if dst.store == nil {
			dst.store = newStore()
		}
		dst.store.merge(src.store)
		if dst.pattern == "" {
			dst.pattern = joinPattern(prefix, src.pattern)
		}
	}
	for key, child := range src.statics {
		mergeNode(dst.staticChild(key), child, prefix)
	}
	for _, e := range src.matchers {
		mergeNode(dst.matcherChild(e.segment), e.node, prefix)
	}
	for _, e := range src.mixed {
		mergeNode(dst.mixedChild(e.segment), e.node, prefix)
	}
	if src.dynamic != nil {
		mergeNode(dst.dynamicChild(src.dynamic.paramName), src.dynamic, prefix)
	}
	if src.wildcard != nil {
		mergeNode(dst.wildcardChild(src.wildcard.paramName), src.wildcard, prefix)
	}
}

func joinPattern(prefix, pattern string) string {
	if prefix == "" {
		return pattern
	}
	if pattern == "/" {
		return prefix
	}
	return prefix + pattern
}

// conflicts reports the first route present in both dst and src with a
// handler for the same method.
func conflicts(dst, src *node) error {
	if dst == nil {
		return nil
	}
	if dst.store != nil && src.store != nil {
		if methods := dst.store.conflicts(src.store); len(methods) > 0 {
			return fmt.Errorf("%w: %s %s", ErrMergeConflict, src.pattern, strings.Join(methods, ","))
		}
	}
	for key, child := range src.statics {
		if err := conflicts(dst.statics[key], child); err != nil {
			return err
		}
	}
	for _, e := range src.matchers {
		if err := conflicts(findEdge(dst.matchers, e.segment.raw), e.node); err != nil {
			return err
		}
	}
	for _, e := range src.mixed {
		if err := conflicts(findEdge(dst.mixed, e.segment.raw), e.node); err != nil {
			return err
		}
	}
	if src.dynamic != nil {
		if err := conflicts(dst.dynamic, src.dynamic); err != nil {
			return err
		}
	}
	if src.wildcard != nil {
		return conflicts(dst.wildcard, src.wildcard)
	}
	return nil
}
