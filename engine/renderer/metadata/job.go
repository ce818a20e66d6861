package metadata

/** @brief Invoked on a worker when the job starts. The returned value is handed to OnComplete. */
type JobStart func(params interface{}) (interface{}, error)

/** @brief Invoked with the result of a successful job. */
type JobOnComplete func(result interface{})

/** @brief Invoked with the input params and the error of a failed job. */
type JobOnFailure func(params interface{}, err error)

/**
 * @brief Describes a job to be run by the job system.
 */
type JobTask struct {
	/** @brief Data to be passed to the entry point upon execution. */
	InputParams interface{}
	/** @brief A function pointer to be invoked when the job starts. Required. */
	OnStart JobStart
	/** @brief A function pointer to be invoked when the job successfully completes. Optional. */
	OnComplete JobOnComplete
	/** @brief A function pointer to be invoked when the job fails. Optional. */
	OnFailure JobOnFailure
	/** @brief Invoked after OnComplete or OnFailure, regardless of outcome. Optional. */
	OnCompletionCallback func()
}
