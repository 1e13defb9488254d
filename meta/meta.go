// meta/meta.go
package meta

// DEFAULT_EPSILON bounds the distance of the returned value function from the optimum.
const DEFAULT_EPSILON = 1e-3

// DEFAULT_GAMMA is the discount factor used by the driver.
const DEFAULT_GAMMA = 0.9

// PROBABILITY_TOLERANCE is the slack allowed when outcome probabilities are summed.
const PROBABILITY_TOLERANCE = 1e-6

// DEFAULT_CONFUSION is the chance the traveler slips into an unintended move.
const DEFAULT_CONFUSION = 0.2

// GOAL_REWARD is collected when the traveler enters the goal cell.
const GOAL_REWARD = 10.0

// EPISODES defines the number of simulated episodes per policy.
const EPISODES = 100

// MAX_STEPS caps the length of a simulated episode.
const MAX_STEPS = 300
