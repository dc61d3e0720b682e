package assets

import "errors"

// AssetResolver consults a stack of loaders, overrides first. A layer's
// "not found" falls through to the next; any other error stops the lookup.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver stacks an optional override directory on top of the
// embedded assets. An empty overrideDir means embedded only.
func NewAssetResolver(overrideDir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if overrideDir != "" {
		dir, err := NewFilesystemLoader(overrideDir)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, dir)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(AssetLoader.LoadStyle, name)
}

func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(AssetLoader.LoadTemplate, name)
}

func (r *AssetResolver) LoadGlyph(name string) (string, error) {
	return r.first(AssetLoader.LoadGlyph, name)
}

func (r *AssetResolver) first(load func(AssetLoader, string) (string, error), name string) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		if content, err = load(l, name); err == nil || !isNotFoundError(err) {
			return content, err
		}
	}
	return "", err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrGlyphNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
