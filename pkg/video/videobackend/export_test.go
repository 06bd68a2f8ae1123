package videobackend

import "gocv.io/x/gocv"

func OverloadReadFromVideoCapture(overload func(vc *gocv.VideoCapture, mat *gocv.Mat) bool) func() {
	readFromVidCapRef := readFromVideoCapture
	readFromVideoCapture = overload
	return func() { readFromVideoCapture = readFromVidCapRef }
}
