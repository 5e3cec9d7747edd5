package agent

// DescribeWorkflow renders the control loop as ASCII for the --graph
// flag. The shape is fixed; only the tool catalog varies by registry.
func DescribeWorkflow() string {
	return `
        +-----------+
        |  PLANNING |
        +-----+-----+
              |
              v
        +-----------+
   +--->| SELECTING |
   |    +-----+-----+
   |          |
   |          v
   |    +-----------+
   |    | REPAIRING |
   |    +-----+-----+
   |          |
   |   +------+-------+
   |   |              |
   |   v              v
   | +-----------+  +-----------+
   | | DEDUP_HIT |  | EXECUTING |
   | +-----+-----+  +-----+-----+
   |       |              |
   |       +------+-------+
   |              v
   |    +----------------+
   +----| PROGRESS_CHECK |
        +-------+--------+
                |
                v
        +--------------+
        | SYNTHESIZING |
        +------+-------+
               |
               v
           +------+
           | DONE |
           +------+
`
}
