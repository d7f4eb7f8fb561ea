// Package formats reads and writes voxel volumes (.vxd) and writes compiled
// meshes as Wavefront OBJ.
package formats
