// Package slugregistry implements the share slug registry inside the sharing
// context.
//
// The module binds caller payloads (cat builds, palettes, gacha pulls) to a
// short random slug that can be typed back by humans. Slug uniqueness is
// enforced by the storage layer; the pre-insert lookup only narrows the retry
// loop.
package slugregistry
