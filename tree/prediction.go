package tree

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrCannotPredictFromSample is the error returned by the Predict method of a tree
when the prediction cannot be made because the tree itself cannot make
a prediction for that kind of sample: it takes a value on an attribute that
never appeared on the training data reaching that node.
*/
const ErrCannotPredictFromSample = PredictionError("no prediction available for this kind of sample")

/*
ErrSampleTooShort is the error returned when predicting a sample that has
no value for an attribute the tree splits on.
*/
const ErrSampleTooShort = PredictionError("sample has no value for a split attribute")

func (pe PredictionError) Error() string {
	return string(pe)
}
