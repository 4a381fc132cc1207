package describe

// InputOption sets optional fields of an InputSpec.
type InputOption func(*InputSpec)

// OutputOption sets optional fields of an OutputSpec.
type OutputOption func(*OutputSpec)

// WithDefault declares the value used when the input is not supplied.
// Defaults are used verbatim and are not coerced.
func WithDefault(v any) InputOption {
	return func(s *InputSpec) {
		s.Default = v
		s.HasDefault = true
	}
}

// WithValues declares the allowed values, in order.
func WithValues(values ...any) InputOption {
	return func(s *InputSpec) {
		s.Values = append([]any(nil), values...)
	}
}

// WithStringValues is WithValues for the common string enumeration case.
func WithStringValues(values ...string) InputOption {
	return func(s *InputSpec) {
		s.Values = make([]any, len(values))
		for i, v := range values {
			s.Values[i] = v
		}
	}
}

// WithDeserializer attaches the function that turns a file path into the
// value the compute function receives.
func WithDeserializer(fn Deserializer) InputOption {
	return func(s *InputSpec) {
		s.Deserializer = fn
	}
}

// WithStrip trims surrounding white space from string inputs.
func WithStrip() InputOption {
	return func(s *InputSpec) { s.Strip = true }
}

// WithLower lowercases string inputs.
func WithLower() InputOption {
	return func(s *InputSpec) { s.Lower = true }
}

// WithUpper uppercases string inputs.
func WithUpper() InputOption {
	return func(s *InputSpec) { s.Upper = true }
}

// WithFormat sets a format hint, FormatDate or FormatDateTime.
func WithFormat(format string) InputOption {
	return func(s *InputSpec) { s.Format = format }
}

// WithMin sets the minimum hint for numeric inputs.
func WithMin(v float64) InputOption {
	return func(s *InputSpec) { s.Min = &v }
}

// WithMax sets the maximum hint for numeric inputs.
func WithMax(v float64) InputOption {
	return func(s *InputSpec) { s.Max = &v }
}

// WithStep sets the step hint for numeric inputs.
func WithStep(v float64) InputOption {
	return func(s *InputSpec) { s.Step = &v }
}

// WithSerializer attaches the function that writes an output to a file.
func WithSerializer(fn Serializer) OutputOption {
	return func(s *OutputSpec) {
		s.Serializer = fn
	}
}

// WithPath sets the default file name of a new-file output.
func WithPath(path string) OutputOption {
	return func(s *OutputSpec) {
		s.Path = path
	}
}
