package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief No known resource type. */
	ResourceTypeNone ResourceType = iota
	/** @brief Mesh resource type (an OBJ model). */
	ResourceTypeMesh
	/** @brief Scene manifest resource type. */
	ResourceTypeScene
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeMesh:
		return "mesh"
	case ResourceTypeScene:
		return "scene"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The resource type. */
	Type ResourceType
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}
