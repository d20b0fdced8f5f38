// Package metadata reads and rewrites the package.yaml
// metadata file. Reads go through full YAML decoding;
// writes rewrite only the version and lock timestamp
// lines so the rest of the file survives byte for byte.
package metadata
