// Package normalize canonicalises the loose enum-like strings the wire
// format accepts for course/room kind, mirroring the if/else chain the
// original source used in parseInputData and the teacher's equivalent
// type-string handling in csvio.
package normalize

import "github.com/rhyrak/coursecsp/pkg/model"

// Kind maps any of the accepted spellings to the canonical
// model.Kind. Unrecognised input is passed through unchanged; the
// validator does not check kinds, so such a course only matches rooms
// whose type is the identical string.
func Kind(raw string) model.Kind {
	switch raw {
	case "lec", "Lec", "lecture", "Lecture":
		return model.KindLecture
	case "tut", "Tut", "tutorial", "Tutorial":
		return model.KindTutorial
	case "lab", "Lab":
		return model.KindLab
	default:
		return model.Kind(raw)
	}
}

// Course returns a copy of c with Type canonicalised and Duration
// defaulted to 1 when unset, per the wire schema's stated defaults.
func Course(c model.Course) model.Course {
	c.Type = Kind(string(c.Type))
	if c.Duration <= 0 {
		c.Duration = 1
	}
	return c
}

// Room returns a copy of r with Type canonicalised.
func Room(r model.Room) model.Room {
	r.Type = Kind(string(r.Type))
	return r
}

// Input normalises every course and room in place and returns the
// same *model.Input for chaining.
func Input(in *model.Input) *model.Input {
	for i := range in.Courses {
		in.Courses[i] = Course(in.Courses[i])
	}
	for i := range in.Rooms {
		in.Rooms[i] = Room(in.Rooms[i])
	}
	return in
}
