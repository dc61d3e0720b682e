// Package assets provides the page template, CSS styles and glyph SVGs.
//
// Assets are looked up by bare name through an AssetLoader. The built-in set
// is embedded; an override directory laid out as
//
//	{basePath}/styles/{name}.css
//	{basePath}/templates/{name}.html
//	{basePath}/glyphs/{name}.svg
//
// can replace any single file. AssetResolver stacks the override directory on
// the embedded loader and only falls through on "not found".
//
// Names are plain identifiers, and FilesystemLoader refuses any resolved path,
// symlinks included, that leaves basePath.
package assets
